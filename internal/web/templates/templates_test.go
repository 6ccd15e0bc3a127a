package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csvcompare/internal/compare"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestAppInfo_Title(t *testing.T) {
	assert.Equal(t, "CSV Compare :: 1.0.0", AppInfo{Name: "CSV Compare", Version: "1.0.0"}.Title())
	assert.Equal(t, "CSV Compare", AppInfo{Name: "CSV Compare"}.Title())
}

func TestErrorAlert_EscapesText(t *testing.T) {
	out := render(t, ErrorAlert("<b>bad</b>", "retry", "FILE002"))
	assert.Contains(t, out, "&lt;b&gt;bad&lt;/b&gt;")
	assert.Contains(t, out, "(Code: FILE002)")
	assert.NotContains(t, out, "<b>bad</b>")
}

func TestComparePage_NoComparison(t *testing.T) {
	out := render(t, ComparePage(PageParams{
		App:   AppInfo{Name: "CSV Compare", Version: "1.0.0"},
		File1: "a.csv",
		File2: `b "quoted".csv`,
	}))
	assert.Contains(t, out, "<title>CSV Compare :: 1.0.0</title>")
	assert.Contains(t, out, `value="a.csv"`)
	assert.Contains(t, out, `value="b &#34;quoted&#34;.csv"`)
	assert.Contains(t, out, "No comparison loaded")
	assert.NotContains(t, out, `class="alert"`)

	assert.Contains(t, out, `<script src="`+HTMXSource+`" defer></script>`)
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/app.css">`)
	assert.Contains(t, out, `<meta name="htmx-config"`)
	assert.Contains(t, out, `hx-post="/compare" hx-target="#compare" hx-swap="outerHTML"`)
	assert.Contains(t, out, `<div id="alerts"></div>`)
}

func TestCompareContent_AlertSlot(t *testing.T) {
	out := render(t, CompareContent(PageParams{
		Alert: &compare.UserMessage{Message: "Error reading file 1", Code: "FILE003"},
	}))
	assert.True(t, strings.HasPrefix(out, `<div id="compare">`))
	assert.NotContains(t, out, "<html")
	assert.Contains(t, out, `<div id="alerts"><div class="alert" role="alert">`)
	assert.Contains(t, out, "(Code: FILE003)")
}

func TestCellClass(t *testing.T) {
	tests := []struct {
		cell compare.Cell
		want string
	}{
		{compare.Cell{Present: true, Status: compare.Match, Background: compare.BackgroundBand}, "status-match bg-band"},
		{compare.Cell{Present: true, Status: compare.Mismatch, Background: compare.BackgroundMismatch}, "status-mismatch bg-mismatch"},
		{compare.Cell{Status: compare.Neutral, Background: compare.BackgroundPlain}, "status-neutral bg-plain absent"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, cellClass(tt.cell))
		})
	}
}

func TestGrid_RendersCellsAndPager(t *testing.T) {
	left := tableOf([]string{"id", "v"}, [][]string{{"1", "x"}, {"2", "y"}})
	right := tableOf([]string{"id", "v"}, [][]string{{"1", "z"}})
	m, err := compare.NewModel(left, right)
	require.NoError(t, err)

	out := render(t, Grid(GridParams{
		ID:      "abc",
		Columns: m.Columns(),
		Rows:    m.Window(0, 2),
		Offset:  0,
		Limit:   2,
		Total:   m.DisplayRowCount(),
		Summary: m.Summary(),
	}))

	assert.Contains(t, out, `data-comparison-id="abc"`)
	assert.Contains(t, out, "line 0 » File 1")
	assert.Contains(t, out, `class="status-mismatch bg-mismatch"`)
	assert.NotContains(t, out, "style=")
	assert.Contains(t, out, "Rows 1-2 of 4")
	assert.Contains(t, out, `href="/?offset=2" hx-get="/?offset=2" hx-target="#compare"`)
	assert.NotContains(t, out, "Previous")
}

func TestGrid_LastPage(t *testing.T) {
	g := GridParams{Offset: 4, Limit: 2, Total: 5, Rows: make([]compare.Row, 1)}
	assert.True(t, g.HasPrev())
	assert.False(t, g.HasNext())
	assert.Equal(t, 2, g.PrevOffset())
}

func TestAboutPage(t *testing.T) {
	out := render(t, AboutPage(AppInfo{Name: "CSV Compare", Version: "1.0.0", Author: "Jon"}))
	assert.Contains(t, out, "<h1>CSV Compare</h1>")
	assert.Contains(t, out, "<dd>1.0.0</dd>")
	assert.Contains(t, out, "<dd>Jon</dd>")
}

type memTable struct {
	columns []string
	rows    [][]string
}

func tableOf(columns []string, rows [][]string) memTable {
	return memTable{columns: columns, rows: rows}
}

func (t memTable) Columns() []string { return t.columns }
func (t memTable) RowCount() int     { return len(t.rows) }
func (t memTable) CellAt(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}
