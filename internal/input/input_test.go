package input

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/japanese"
)

const doc = "名前,メモ\n\"a,b\",c\n"

func TestReadFilePlain(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain.csv")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != doc {
		t.Fatalf("ReadFile() = %q, want %q", got, doc)
	}
}

func TestReadFileGzip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(doc)); err != nil {
		t.Fatalf("gzip Write() error = %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip Close() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "table.csv.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != doc {
		t.Fatalf("ReadFile() = %q, want %q", got, doc)
	}
}

func TestReadZstd(t *testing.T) {
	t.Parallel()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	compressed := enc.EncodeAll([]byte(doc), nil)
	_ = enc.Close()

	got, err := Read(bytes.NewReader(compressed), "table.csv.zst", Options{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != doc {
		t.Fatalf("Read() = %q, want %q", got, doc)
	}
}

func TestReadShiftJIS(t *testing.T) {
	t.Parallel()

	encoded, err := japanese.ShiftJIS.NewEncoder().String(doc)
	if err != nil {
		t.Fatalf("encode Shift_JIS: %v", err)
	}

	got, err := Read(strings.NewReader(encoded), "table.csv", Options{Encoding: "shift_jis"})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != doc {
		t.Fatalf("Read() = %q, want %q", got, doc)
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Read(strings.NewReader(doc), "x.csv", Options{Encoding: "no-such-charset"}); err == nil {
		t.Fatalf("Read() accepted unknown encoding")
	}
	if _, err := Read(strings.NewReader("not gzip"), "x.csv.gz", Options{}); err == nil {
		t.Fatalf("Read() accepted corrupt gzip")
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"), Options{}); err == nil {
		t.Fatalf("ReadFile() accepted missing file")
	}
}

func TestReadDetectsCompressionWithoutExtension(t *testing.T) {
	t.Parallel()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte(doc)); err != nil {
		t.Fatalf("gzip Write() error = %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip Close() error = %v", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	zst := enc.EncodeAll([]byte(doc), nil)
	_ = enc.Close()

	tests := []struct {
		name  string
		input []byte
		file  string
		want  string
	}{
		{name: "gzipStdin", input: gz.Bytes(), file: "", want: doc},
		{name: "gzipPlainExtension", input: gz.Bytes(), file: "export.csv", want: doc},
		{name: "zstdStdin", input: zst, file: "", want: doc},
		{name: "plainText", input: []byte(doc), file: "", want: doc},
		{name: "shorterThanMagic", input: []byte("a"), file: "", want: "a"},
		{name: "empty", input: nil, file: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Read(bytes.NewReader(tc.input), tc.file, Options{})
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("Read() = %q, want %q", got, tc.want)
			}
		})
	}
}
