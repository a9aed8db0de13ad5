package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oleg578/tinycsv"
	"github.com/oleg578/tinycsv/internal/config"
)

type convertOptions struct {
	output      string
	outComma    string
	outNewline  string
	strict      bool
	alwaysQuote bool
	rowIDs      bool
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Re-encode a document with another separator, newline style or quoting mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTable(args)
			if err != nil {
				return err
			}
			if opts.rowIDs {
				if err := addRowIDs(t); err != nil {
					return err
				}
			}

			comma := a.cfg.CommaByte()
			if opts.outComma != "" {
				if comma, err = config.ParseComma(opts.outComma); err != nil {
					return err
				}
			}
			newline := a.cfg.NewlineStyle()
			if opts.outNewline != "" {
				if newline, err = tinycsv.ParseNewlineStyle(opts.outNewline); err != nil {
					return err
				}
			}

			return a.withOutput(opts.output, func(w io.Writer) error {
				tw := tinycsv.NewWriter(w)
				tw.Comma = comma
				tw.Newline = newline
				tw.Strict = opts.strict || a.cfg.Strict
				tw.AlwaysQuote = opts.alwaysQuote
				if err := tw.WriteAll(t.Headers); err != nil {
					return err
				}
				if err := tw.WriteAll(t.Records); err != nil {
					return err
				}
				return tw.Flush()
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	flags.StringVar(&opts.outComma, "out-comma", "", "Separator for the output (default: input separator)")
	flags.StringVar(&opts.outNewline, "out-newline", "", "Newline style for the output (default: input style)")
	flags.BoolVar(&opts.strict, "strict", false, "Quote every cell that contains a quote")
	flags.BoolVar(&opts.alwaysQuote, "always-quote", false, "Quote every cell")
	flags.BoolVar(&opts.rowIDs, "row-ids", false, `Prepend an "id" column holding a time-ordered UUID per record`)
	return cmd
}

// addRowIDs prepends an id column. The first header row is labelled "id" and every record gets a
// fresh version 7 UUID, so ids sort in insertion order.
func addRowIDs(t *tinycsv.Table) error {
	for i, header := range t.Headers {
		label := ""
		if i == 0 {
			label = "id"
		}
		t.Headers[i] = append([]string{label}, header...)
	}
	for i, record := range t.Records {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate row id: %w", err)
		}
		t.Records[i] = append([]string{id.String()}, record...)
	}
	return nil
}

// withOutput runs fn against path, or stdout when path is empty or "-".
func (a *app) withOutput(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(a.stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	a.infof("wrote %s", path)
	return nil
}
