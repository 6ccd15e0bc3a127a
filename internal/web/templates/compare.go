package templates

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/csvcompare/internal/compare"
)

// PageParams is everything the compare page shows.
type PageParams struct {
	App    AppInfo
	File1  string
	File2  string
	Status compare.StatusMessage
	Alert  *compare.UserMessage
	Grid   *GridParams // nil before the first comparison
}

// GridParams is one page of the interleaved comparison grid.
type GridParams struct {
	ID      string
	Columns []string
	Rows    []compare.Row
	Offset  int
	Limit   int
	Total   int
	Summary compare.Summary
}

// HasPrev reports whether rows exist before this page.
func (g *GridParams) HasPrev() bool { return g.Offset > 0 }

// HasNext reports whether rows exist after this page.
func (g *GridParams) HasNext() bool { return g.Offset+len(g.Rows) < g.Total }

// PrevOffset is the offset of the previous page.
func (g *GridParams) PrevOffset() int { return max(g.Offset-g.Limit, 0) }

// NextOffset is the offset of the next page.
func (g *GridParams) NextOffset() int { return g.Offset + len(g.Rows) }

func rowRange(g GridParams) string {
	first := g.Offset + 1
	if len(g.Rows) == 0 {
		first = g.Offset
	}
	return fmt.Sprintf("Rows %d-%d of %d", first, g.Offset+len(g.Rows), g.Total)
}

func summaryLine(s compare.Summary) string {
	return fmt.Sprintf("%d row pairs, %d columns, %d mismatched cells.", s.Pairs, s.Columns, s.Mismatched)
}

// cellClass names the match status and the background of a cell. The
// background classes are defined in static/app.css.
func cellClass(c compare.Cell) string {
	class := "status-" + strings.ToLower(c.Status.String()) + " bg-" + c.Background.String()
	if !c.Present {
		class += " absent"
	}
	return class
}

func pageHref(offset int) string {
	q := url.Values{"offset": {strconv.Itoa(offset)}}
	return "/?" + q.Encode()
}
