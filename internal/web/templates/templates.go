// Package templates renders the HTML pages and fragments of the compare UI.
//
// Components are written in the .templ files; the _templ.go files are
// generated from them.
package templates

//go:generate templ generate

// AppInfo identifies the running application on the page title and the
// about page.
type AppInfo struct {
	Name    string
	Version string
	Author  string
}

// Title returns "<name> :: <version>".
func (a AppInfo) Title() string {
	if a.Version == "" {
		return a.Name
	}
	return a.Name + " :: " + a.Version
}

// HTMXSource is the pinned htmx build loaded by every page.
const HTMXSource = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// htmxConfig swaps error responses too, so alerts rendered with a 4xx or
// 5xx status reach the page. Indicator styles live in app.css because the
// policy forbids inline styles.
const htmxConfig = `{"includeIndicatorStyles":false,"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`
