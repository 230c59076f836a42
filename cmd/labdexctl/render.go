package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	labdex "github.com/kailas-cloud/labdex/pkg/sdk"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// renderRows writes patients as an aligned table with the given columns.
func renderRows(w io.Writer, cols []labdex.Column, rows []labdex.Patient) error {
	tw := newTable(w)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	cells := make([]string, len(cols))
	for _, p := range rows {
		for i, c := range cols {
			cells[i] = p.Value(c.Key)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// renderSnapshot draws the whole browse screen.
func renderSnapshot(w io.Writer, s labdex.Snapshot) error {
	fmt.Fprintf(w, "\nOrganisation: %s\n", s.Selected.Name())
	fmt.Fprintf(w, "Search by: %s [%s]\n", s.Search, s.Placeholder)
	switch {
	case s.Error != "":
		fmt.Fprintln(w, s.Error)
		return nil
	case s.Loading:
		fmt.Fprintln(w, "Loading...")
		return nil
	}
	if err := renderRows(w, s.Columns, s.Rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s | %s\n", s.PageLabel, s.Summary)
	return nil
}
