package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csvcompare/internal/compare"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runDiff(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("S3_ENABLED", "false")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"diff"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDiff_Identical(t *testing.T) {
	a := writeCSV(t, "a.csv", "id,name\n1,alice\n")
	b := writeCSV(t, "b.csv", "id,name\n1,alice\n")

	out, err := runDiff(t, a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "files are identical")
}

func TestDiff_TextReport(t *testing.T) {
	a := writeCSV(t, "a.csv", "id,name,age\n1,alice,30\n2,bob,40\n")
	b := writeCSV(t, "b.csv", "id,name\n1,alice\n2,bobby\n")

	out, err := runDiff(t, a, b)
	assert.ErrorIs(t, err, errFilesDiffer)

	assert.Contains(t, out, "only in "+a+": age")
	assert.Contains(t, out, "LINE")
	assert.Contains(t, out, "bobby")
	assert.Contains(t, out, "(absent)")
}

func TestDiff_JSONTruncated(t *testing.T) {
	a := writeCSV(t, "a.csv", "id,name\n1,a\n2,b\n3,c\n")
	b := writeCSV(t, "b.csv", "id,name\n1,x\n2,y\n3,z\n")

	out, err := runDiff(t, "--output-format", "json", "--max-differences", "2", a, b)
	assert.ErrorIs(t, err, errFilesDiffer)

	var report diffReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Summary.Mismatched)
	assert.Len(t, report.Differences, 2)
	assert.True(t, report.Truncated)
	assert.Equal(t, compare.Difference{Line: 0, Column: "name", Left: "a", Right: "x", InLeft: true, InRight: true}, report.Differences[0])
}

func TestDiff_Errors(t *testing.T) {
	a := writeCSV(t, "a.csv", "id\n1\n")

	_, err := runDiff(t, a, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFilesDiffer)
	assert.Contains(t, err.Error(), "file 2")
	assert.Contains(t, err.Error(), "missing.csv")

	_, err = runDiff(t, "--output-format", "xml", a, a)
	assert.ErrorContains(t, err, "--output-format")

	_, err = runDiff(t, a)
	assert.Error(t, err)
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "(absent)", cellText("", false))
	assert.Equal(t, `""`, cellText("", true))
	assert.Equal(t, "x", cellText("x", true))
}
