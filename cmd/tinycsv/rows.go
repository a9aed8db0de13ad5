package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oleg578/tinycsv"
)

func newRowsCmd(a *app) *cobra.Command {
	var maxRows int
	var count bool

	cmd := &cobra.Command{
		Use:   "rows [file]",
		Short: "Split a document into rows and print them quoted, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readDocument(args)
			if err != nil {
				return err
			}
			rows := a.splitter().Split(text, maxRows)
			if count {
				_, err := fmt.Fprintln(a.stdout, len(rows))
				return err
			}
			for i, row := range rows {
				if _, err := fmt.Fprintf(a.stdout, "%d\t%q\n", i, row); err != nil {
					return err
				}
			}
			a.infof("split %d rows", len(rows))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxRows, "max-rows", tinycsv.NoLimit, "Stop after this many rows (-1 for no limit)")
	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of rows")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var maxRows int

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode every row and print its cells as a JSON array",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readDocument(args)
			if err != nil {
				return err
			}
			rows := a.splitter().Split(text, maxRows)
			cells := tinycsv.DecodeRows(rows, a.cfg.CommaByte(), 0, a.cfg.Workers)

			enc := json.NewEncoder(a.stdout)
			enc.SetEscapeHTML(false)
			for _, row := range cells {
				if err := enc.Encode(row); err != nil {
					return fmt.Errorf("write row: %w", err)
				}
			}
			a.infof("decoded %d rows with %d workers", len(cells), max(a.cfg.Workers, 1))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxRows, "max-rows", tinycsv.NoLimit, "Stop after this many rows (-1 for no limit)")
	return cmd
}

func (a *app) splitter() tinycsv.Splitter {
	return tinycsv.Splitter{
		Comma:     a.cfg.CommaByte(),
		Multiline: a.cfg.IsMultiline(),
		Newline:   a.cfg.NewlineStyle(),
	}
}
