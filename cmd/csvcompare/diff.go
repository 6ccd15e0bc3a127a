package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvcompare/internal/compare"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type diffOptions struct {
	format         string
	maxDifferences int
}

// diffReport is what diff prints.
type diffReport struct {
	File1       string               `json:"file1"`
	File2       string               `json:"file2"`
	Summary     compare.Summary      `json:"summary"`
	Differences []compare.Difference `json:"differences"`
	Truncated   bool                 `json:"truncated"`
}

func newDiffCmd() *cobra.Command {
	opts := diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Print the cells that differ between two files",
		Long:  "Compare two sources without starting the server. Exits 0 when the files agree, 1 when they differ and 2 on error.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("invalid --output-format %q: want %s or %s", opts.format, formatText, formatJSON)
			}

			a, err := setup(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.service.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return errors.New(compare.FormatUserError(err))
			}

			report := newDiffReport(snap, opts.maxDifferences)
			if err := writeReport(cmd.OutOrStdout(), report, opts.format); err != nil {
				return err
			}
			if !report.Summary.Identical() {
				return errFilesDiffer
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "output-format", formatText, "Output format: text, json")
	cmd.Flags().IntVar(&opts.maxDifferences, "max-differences", 100, "Maximum differences to list (0 = all)")
	return cmd
}

func newDiffReport(snap *compare.Snapshot, limit int) diffReport {
	sum := snap.Model.Summary()
	diffs := snap.Model.Differences(limit)
	return diffReport{
		File1:       snap.File1,
		File2:       snap.File2,
		Summary:     sum,
		Differences: diffs,
		Truncated:   limit > 0 && len(diffs) < sum.Mismatched,
	}
}

func writeReport(w io.Writer, r diffReport, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return writeText(w, r)
}

func writeText(w io.Writer, r diffReport) error {
	s := r.Summary
	fmt.Fprintf(w, "--- %s\n+++ %s\n", r.File1, r.File2)
	fmt.Fprintf(w, "rows: %d vs %d, columns: %d\n", s.LeftRows, s.RightRows, s.Columns)
	if len(s.OnlyInLeft) > 0 {
		fmt.Fprintf(w, "only in %s: %s\n", r.File1, strings.Join(s.OnlyInLeft, ", "))
	}
	if len(s.OnlyInRight) > 0 {
		fmt.Fprintf(w, "only in %s: %s\n", r.File2, strings.Join(s.OnlyInRight, ", "))
	}

	if s.Identical() {
		_, err := fmt.Fprintln(w, "files are identical")
		return err
	}
	fmt.Fprintf(w, "%d mismatched cells in %d columns: %s\n\n", s.Mismatched, len(s.MismatchedIn), strings.Join(s.MismatchedIn, ", "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tCOLUMN\tFILE 1\tFILE 2")
	for _, d := range r.Differences {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.Line, d.Column, cellText(d.Left, d.InLeft), cellText(d.Right, d.InRight))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.Truncated {
		fmt.Fprintf(w, "... %d more\n", s.Mismatched-len(r.Differences))
	}
	return nil
}

func cellText(v string, present bool) string {
	if !present {
		return "(absent)"
	}
	if v == "" {
		return `""`
	}
	return v
}
