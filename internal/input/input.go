// Package input loads documents for the tinycsv command. Compressed input is inflated by extension
// or magic bytes and legacy character sets are transcoded to UTF-8 before the codec sees the text.
package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Options controls how a document is loaded.
type Options struct {
	// Encoding names the source character set as understood by the WHATWG encoding index.
	// Empty or "utf-8" leaves the bytes untouched.
	Encoding string
}

// ReadFile loads path, or stdin when path is empty or "-", and returns the document text.
func ReadFile(path string, opts Options) (string, error) {
	if path == "" || path == Stdin {
		return Read(os.Stdin, "", opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Read(f, path, opts)
}

// Read loads a document from r. name picks a decompressor by extension; when it has none of the
// known extensions, gzip and zstd streams are recognised by their leading bytes.
func Read(r io.Reader, name string, opts Options) (string, error) {
	src, closeFn, err := decompress(r, name)
	if err != nil {
		return "", err
	}
	defer closeFn()

	src, err = transcode(src, opts.Encoding)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// decompress picks a decompressor by extension. Without a known extension, as for stdin, the stream
// is identified by its magic bytes instead.
func decompress(r io.Reader, name string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return gunzip(r)
	case ".zst", ".zstd":
		return unzstd(r)
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return gunzip(br)
	case bytes.HasPrefix(head, zstdMagic):
		return unzstd(br)
	default:
		return br, func() {}, nil
	}
}

func gunzip(r io.Reader) (io.Reader, func(), error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open gzip stream: %w", err)
	}
	return zr, func() { _ = zr.Close() }, nil
}

func unzstd(r io.Reader) (io.Reader, func(), error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open zstd stream: %w", err)
	}
	return zr, zr.Close, nil
}

func transcode(r io.Reader, name string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
