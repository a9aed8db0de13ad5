package tinycsv

import (
	"iter"
	"strings"
)

// NoLimit disables the row cap of SplitRows and Splitter.Split.
const NoLimit = -1

// Splitter partitions a document into row strings. Rows are still separator-joined; pass them to a
// Decoder to obtain cells.
//
// The zero value splits on both "\n" and "\r\n" with ',' as separator and without multi-line support.
type Splitter struct {
	// Comma is the field separator. Default is ','.
	Comma byte
	// Multiline keeps quoted cells that embed newlines inside a single row. When false rows are split
	// purely on newline tokens, which is cheaper but breaks such cells apart.
	Multiline bool
	// Newline selects the accepted newline tokens.
	Newline NewlineStyle
}

// SplitRows splits text into non-empty rows using the default newline token set. A non-negative
// maxRows stops the scan once that many rows have been produced; NoLimit scans the whole document.
func SplitRows(text string, comma byte, multiline bool, maxRows int) []string {
	s := Splitter{Comma: comma, Multiline: multiline}
	return s.Split(text, maxRows)
}

// Split returns the rows of text in document order. Empty rows are omitted. A non-negative maxRows
// caps the result and stops scanning right after the last returned row.
func (s Splitter) Split(text string, maxRows int) []string {
	if text == "" || maxRows == 0 {
		return nil
	}
	var rows []string
	if maxRows > 0 {
		rows = make([]string, 0, maxRows)
	}
	s.scan(text, func(row string) bool {
		rows = append(rows, row)
		return maxRows < 0 || len(rows) < maxRows
	})
	return rows
}

// All returns a lazy sequence over the rows of text. Breaking out of the range loop stops the scan.
func (s Splitter) All(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		s.scan(text, yield)
	}
}

func (s Splitter) scan(text string, yield func(string) bool) {
	if s.Multiline {
		s.scanMultiline(text, yield)
		return
	}
	s.scanLines(text, yield)
}

// scanLines is the fast path: every newline token ends a row regardless of quoting.
// All tokens end in '\n', so the scan jumps between line feeds.
func (s Splitter) scanLines(text string, yield func(string) bool) {
	start := 0
	from := 0
	for from < len(text) {
		idx := strings.IndexByte(text[from:], '\n')
		if idx < 0 {
			break
		}
		lf := from + idx
		from = lf + 1

		end := lf
		switch {
		case lf > start && text[lf-1] == '\r' && s.Newline.acceptsCRLF():
			end = lf - 1
		case s.Newline.acceptsLF():
		default:
			// "\r\n" only, and this line feed stands alone.
			continue
		}

		if end > start && !yield(text[start:end]) {
			return
		}
		start = from
	}
	if start < len(text) {
		yield(text[start:])
	}
}

// scanMultiline walks the document byte by byte and only honours a newline token when the current
// field is not inside an open quote.
func (s Splitter) scanMultiline(text string, yield func(string) bool) {
	comma := commaOrDefault(s.Comma)
	state := newFieldState()
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isNewlineByte(c) && state.canBreak() {
			if n := s.Newline.newlineAt(text, i); n > 0 {
				if i > start && !yield(text[start:i]) {
					return
				}
				i += n - 1
				start = i + 1
				state.reset()
				continue
			}
		}
		state.observe(c, comma)
	}
	if start < len(text) {
		yield(text[start:])
	}
}
