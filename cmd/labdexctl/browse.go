package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	labdex "github.com/kailas-cloud/labdex/pkg/sdk"
)

const browseHelp = `Type search text (tokens separated by ';') and press enter.
Commands: :n next page, :p previous page, :o ID switch organisation, :q quit.`

func newBrowseCmd(c *ctl) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [ORG]",
		Short: "Interactively filter and page through samples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			render := func(s labdex.Snapshot) {
				if err := renderSnapshot(out, s); err != nil {
					c.logger.Warn("render failed", "error", err)
				}
			}

			b := labdex.NewBrowser(c.client, labdex.WithBrowserLogger(c.logger))
			defer b.Close()

			if err := b.Load(ctx); err != nil {
				render(b.Snapshot())
				return err
			}
			if len(args) == 1 {
				org, err := c.organisation(ctx, args[0])
				if err != nil {
					return err
				}
				if err := b.SelectOrganisation(ctx, org.ID); err != nil {
					render(b.Snapshot())
					return err
				}
			}

			fmt.Fprintln(out, browseHelp)
			render(b.Snapshot())
			return browseLoop(cmd, b, render)
		},
	}
}

// browseLoop reads commands from stdin until :q or EOF.
func browseLoop(cmd *cobra.Command, b *labdex.Browser, render func(labdex.Snapshot)) error {
	ctx := cmd.Context()
	in := bufio.NewScanner(cmd.InOrStdin())
	for in.Scan() {
		line := in.Text()
		switch {
		case line == ":q":
			return nil
		case line == ":n":
			b.NextPage()
		case line == ":p":
			b.PrevPage()
		case strings.HasPrefix(line, ":o "):
			if err := b.SelectOrganisation(ctx, strings.TrimSpace(line[3:])); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		default:
			// A submitted line is final input; skip the typing quiet period.
			b.SetSearch(line)
			b.FlushSearch()
		}
		render(b.Snapshot())
	}
	if err := in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
