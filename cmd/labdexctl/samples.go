package main

import (
	"fmt"

	"github.com/spf13/cobra"

	labdex "github.com/kailas-cloud/labdex/pkg/sdk"
)

func newSamplesCmd(c *ctl) *cobra.Command {
	var q labdex.Query
	cmd := &cobra.Command{
		Use:   "samples ORG",
		Short: "Search the samples of an organisation (id or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			org, err := c.organisation(ctx, args[0])
			if err != nil {
				return err
			}

			doc, err := c.client.Samples(ctx, org.ID, &q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := renderRows(out, labdex.Columns(org), labdex.Enrich(doc, org)); err != nil {
				return err
			}
			m := doc.Meta
			if m.CurrentPage == nil || m.TotalPages == nil {
				fmt.Fprintf(out, "%d results\n", m.Total)
				return nil
			}
			fmt.Fprintf(out, "%s | %s\n",
				labdex.PageLabel(*m.CurrentPage, *m.TotalPages), labdex.Summary(len(doc.Data), m.Total))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&q.Page, "page", 0, "1-based page of 15 results (0 returns everything)")
	f.StringVar(&q.PatientName, "patient-name", "", "patient name substring")
	f.StringVar(&q.SampleBarcode, "sample-barcode", "", "sample barcode substring")
	f.StringVar(&q.ActivationDate, "activation-date", "", "activation date (YYYY-MM-DD)")
	f.StringVar(&q.ResultDate, "result-date", "", "result date (YYYY-MM-DD)")
	f.StringVar(&q.PatientID, "patient-id", "", "exact patient (profile) id")
	return cmd
}
