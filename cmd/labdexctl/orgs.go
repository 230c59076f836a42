package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrgsCmd(c *ctl) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List organisations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgs, err := c.client.Organisations(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tEXTENDED")
			for _, o := range orgs {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", o.ID, o.Name(), o.Extended())
			}
			return tw.Flush()
		},
	}
}

func newHealthCmd(c *ctl) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hs, err := c.client.Health(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "status\t%s\n", hs.Status)
			for name, status := range hs.Checks {
				fmt.Fprintf(tw, "%s\t%s\n", name, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if hs.Status != "ok" {
				return fmt.Errorf("server is %s", hs.Status)
			}
			return nil
		},
	}
}
