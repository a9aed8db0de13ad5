package tinycsv

import (
	"bufio"
	"errors"
	"io"
)

var (
	errNilWriter      = errors.New("tinycsv: writer is nil")
	errWriterNoTarget = errors.New("tinycsv: writer destination cannot be nil")
)

// Writer emits rows through the lazy-quoting encoder into a buffered destination.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Newline selects the token written after every row.
	Newline NewlineStyle
	// Strict quotes every cell that contains a quote.
	Strict bool
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	enc     Encoder
	scratch []byte
	err     error
}

// NewWriter creates a new Writer with internal buffering tuned for bulk writes.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:   bufio.NewWriterSize(w, defaultBufferSize),
		Comma: defaultComma,
	}
}

// Reset updates the underlying writer while preserving the configuration flags.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single row. The row is terminated with the configured newline token.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	w.enc.Comma = commaOrDefault(w.Comma)
	w.enc.Strict = w.Strict
	w.enc.AlwaysQuote = w.AlwaysQuote

	w.scratch = w.enc.AppendRow(w.scratch[:0], record)
	w.scratch = append(w.scratch, w.Newline.Token()...)
	if _, err := w.dst.Write(w.scratch); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple rows, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}
