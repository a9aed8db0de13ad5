package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/oleg578/tinycsv/internal/xlsx"
)

func newXLSXCmd(a *app) *cobra.Command {
	var output, sheet string

	cmd := &cobra.Command{
		Use:   "xlsx [file] -o book.xlsx",
		Short: "Export a document to an Excel workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("an output workbook is required (-o)")
			}
			t, err := a.readTable(args)
			if err != nil {
				return err
			}
			if err := xlsx.Export(t, output, sheet); err != nil {
				return err
			}
			a.infof("exported %d rows to %s", len(t.Headers)+len(t.Records), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Workbook to create")
	cmd.Flags().StringVar(&sheet, "sheet", xlsx.DefaultSheet, "Sheet name")
	return cmd
}

func newFromXLSXCmd(a *app) *cobra.Command {
	var output, sheet string

	cmd := &cobra.Command{
		Use:   "from-xlsx book.xlsx",
		Short: "Print one sheet of an Excel workbook as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := xlsx.Import(args[0], sheet, a.cfg.HeaderRows, a.cfg.CommaByte(), a.cfg.NewlineStyle())
			if err != nil {
				return err
			}
			return a.withOutput(output, func(w io.Writer) error {
				_, err := t.WriteTo(w)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	return cmd
}
