package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/oleg578/tinycsv"
	"github.com/oleg578/tinycsv/internal/config"
	"github.com/oleg578/tinycsv/internal/input"
)

// app carries the resolved settings and I/O shared by all subcommands.
type app struct {
	configPath string
	comma      string
	newline    string
	encoding   string
	multiline  bool
	headerRows int
	workers    int
	verbose    bool

	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	logger *log.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		logger: log.New(stderr, "tinycsv: ", 0),
	}

	rootCmd := &cobra.Command{
		Use:   "tinycsv",
		Short: "Split, decode and re-encode delimiter-separated text",
		Long: `tinycsv reads CSV-like documents with a configurable separator and newline style.
Quoted cells may span several lines, and cells are only quoted when they have to be.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.comma, "comma", ",", `Field separator (one ASCII character, "\t" for tab)`)
	flags.StringVar(&a.newline, "newline", "platform", "Newline style: platform, lf, crlf")
	flags.BoolVar(&a.multiline, "multiline", true, "Allow quoted cells to span lines")
	flags.StringVar(&a.encoding, "encoding", "", "Input character set, e.g. shift_jis or gbk")
	flags.IntVar(&a.headerRows, "header-rows", 1, "Number of leading header rows")
	flags.IntVar(&a.workers, "workers", 0, "Decode rows on this many goroutines")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(
		newRowsCmd(a),
		newDecodeCmd(a),
		newConvertCmd(a),
		newXLSXCmd(a),
		newFromXLSXCmd(a),
		newWatchCmd(a),
	)
	return rootCmd
}

// loadConfig reads the configuration file and lets explicitly set flags override it.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("comma") {
		cfg.Comma = a.comma
	}
	if flags.Changed("newline") {
		cfg.Newline = a.newline
	}
	if flags.Changed("multiline") {
		cfg.Multiline = &a.multiline
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.encoding
	}
	if flags.Changed("header-rows") {
		cfg.HeaderRows = a.headerRows
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) infof(format string, args ...any) {
	if a.verbose {
		a.logger.Printf(format, args...)
	}
}

// readDocument loads the document named by args, or stdin when none is given.
func (a *app) readDocument(args []string) (string, error) {
	opts := input.Options{Encoding: a.cfg.Encoding}
	if len(args) == 0 || args[0] == input.Stdin {
		return input.Read(a.stdin, "", opts)
	}
	return input.ReadFile(args[0], opts)
}

func (a *app) readTable(args []string) (*tinycsv.Table, error) {
	text, err := a.readDocument(args)
	if err != nil {
		return nil, err
	}
	t := tinycsv.ReadTable(text, a.cfg.TableOptions())
	a.infof("read %d header rows and %d records", len(t.Headers), len(t.Records))
	return t, nil
}
