package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/oleg578/tinycsv"
	"github.com/oleg578/tinycsv/internal/watch"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRowsCommand(t *testing.T) {
	t.Parallel()

	doc := "a,b\n\n\"x\ny\",z\n"
	out, _, err := run(t, doc, "rows", "--newline", "lf")
	if err != nil {
		t.Fatalf("rows failed: %v", err)
	}
	want := "0\t\"a,b\"\n1\t\"\\\"x\\ny\\\",z\"\n"
	if out != want {
		t.Fatalf("rows output = %q, want %q", out, want)
	}

	out, _, err = run(t, doc, "rows", "--newline", "lf", "--multiline=false", "--count")
	if err != nil {
		t.Fatalf("rows --count failed: %v", err)
	}
	if out != "3\n" {
		t.Fatalf("rows --count = %q, want %q", out, "3\n")
	}

	out, _, err = run(t, doc, "rows", "--newline", "lf", "--max-rows", "1", "--count")
	if err != nil {
		t.Fatalf("rows --max-rows failed: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("rows --max-rows = %q, want %q", out, "1\n")
	}
}

func TestDecodeCommand(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "a,\"b,c\"\n\"<q>\"\"\",\n", "decode", "--newline", "lf", "--workers", "2")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := "[\"a\",\"b,c\"]\n[\"<q>\\\"\",\"\"]\n"
	if out != want {
		t.Fatalf("decode output = %q, want %q", out, want)
	}
}

func TestDecodeGzipStdin(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("a,\"b,c\"\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, buf.String(), "decode", "--newline", "lf", "-")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if want := "[\"a\",\"b,c\"]\n"; out != want {
		t.Fatalf("decode output = %q, want %q", out, want)
	}
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "a,b\n1,\"x;y\"\n", "convert", "--newline", "lf", "--out-comma", ";")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if want := "a;b\n1;\"x;y\"\n"; out != want {
		t.Fatalf("convert output = %q, want %q", out, want)
	}

	out, _, err = run(t, "a\nsay \"hi\"\n", "convert", "--newline", "lf", "--out-newline", "crlf", "--strict")
	if err != nil {
		t.Fatalf("convert --strict failed: %v", err)
	}
	if want := "a\r\n\"say \"\"hi\"\"\"\r\n"; out != want {
		t.Fatalf("convert --strict output = %q, want %q", out, want)
	}
}

func TestConvertRowIDs(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "name\nalpha\nbeta\n", "convert", "--newline", "lf", "--row-ids")
	if err != nil {
		t.Fatalf("convert --row-ids failed: %v", err)
	}
	tbl := tinycsv.ReadTable(out, tinycsv.TableOptions{Multiline: true, Newline: tinycsv.NewlineLF, HeaderRows: 1})
	if got := tbl.Headers[0]; len(got) != 2 || got[0] != "id" || got[1] != "name" {
		t.Fatalf("header = %v", got)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("records = %v", tbl.Records)
	}
	seen := map[string]bool{}
	for _, rec := range tbl.Records {
		if _, err := uuid.Parse(rec[0]); err != nil {
			t.Fatalf("row id %q is not a UUID: %v", rec[0], err)
		}
		if seen[rec[0]] {
			t.Fatalf("duplicate row id %q", rec[0])
		}
		seen[rec[0]] = true
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	book := filepath.Join(dir, "out.xlsx")
	doc := "id;note\n1;\"two\nlines\"\n2;plain\n"
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "", "xlsx", src, "-o", book, "--comma", ";", "--newline", "lf"); err != nil {
		t.Fatalf("xlsx failed: %v", err)
	}
	out, _, err := run(t, "", "from-xlsx", book, "--comma", ";", "--newline", "lf")
	if err != nil {
		t.Fatalf("from-xlsx failed: %v", err)
	}
	if out != doc {
		t.Fatalf("from-xlsx output = %q, want %q", out, doc)
	}
}

func TestXLSXRequiresOutput(t *testing.T) {
	t.Parallel()

	if _, _, err := run(t, "a\n", "xlsx"); err == nil {
		t.Fatal("xlsx without -o should fail")
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "tinycsv.yaml")
	cfg := "comma: \";\"\nnewline: lf\nheader_rows: 0\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "a;b,c\n", "decode", "--config", cfgPath)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if want := "[\"a\",\"b,c\"]\n"; out != want {
		t.Fatalf("config separator: got %q, want %q", out, want)
	}

	out, _, err = run(t, "a;b,c\n", "decode", "--config", cfgPath, "--comma", ",")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if want := "[\"a;b\",\"c\"]\n"; out != want {
		t.Fatalf("flag override: got %q, want %q", out, want)
	}
}

func TestFlagOverridesInvalidConfigValue(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "tinycsv.yaml")
	if err := os.WriteFile(cfgPath, []byte("comma: \";;\"\nnewline: lf\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "a;b\n", "decode", "--config", cfgPath); err == nil {
		t.Fatal("an invalid separator in the config file should be rejected")
	}

	out, _, err := run(t, "a;b\n", "decode", "--config", cfgPath, "--comma", ";")
	if err != nil {
		t.Fatalf("decode with --comma override failed: %v", err)
	}
	if want := "[\"a\",\"b\"]\n"; out != want {
		t.Fatalf("decode output = %q, want %q", out, want)
	}
}

func TestInvalidComma(t *testing.T) {
	t.Parallel()

	if _, _, err := run(t, "a\n", "rows", "--comma", "\""); err == nil {
		t.Fatal("a quote separator should be rejected")
	}
}

type closedWatcher struct {
	events chan fsnotify.Event
	errs   chan error
}

func (w *closedWatcher) Add(string) error              { return nil }
func (w *closedWatcher) Remove(string) error           { return nil }
func (w *closedWatcher) Close() error                  { return nil }
func (w *closedWatcher) Events() <-chan fsnotify.Event { return w.events }
func (w *closedWatcher) Errors() <-chan error          { return w.errs }

func (w *closedWatcher) NewWatcher() (watch.WatcherInstance, error) { return w, nil }

func TestWatchLogsCounts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, logger: log.New(&stderr, "", 0)}
	a.cfg.Comma = ","
	a.cfg.Newline = "lf"
	a.cfg.HeaderRows = 1

	w := &closedWatcher{events: make(chan fsnotify.Event), errs: make(chan error)}
	close(w.events)
	if err := a.watch(context.Background(), path, w); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if got := stderr.String(); !strings.Contains(got, "1 header rows, 2 records, 2 columns") {
		t.Fatalf("log output = %q", got)
	}
}
