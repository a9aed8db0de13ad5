package tinycsv

import (
	"bytes"
	"io"
	"slices"
)

// TableOptions configures ReadTable.
type TableOptions struct {
	// Comma is the field separator. Default is ','.
	Comma byte
	// Multiline keeps quoted cells with embedded newlines inside one row.
	Multiline bool
	// Newline selects the accepted newline tokens and the token used when the table is written back.
	Newline NewlineStyle
	// HeaderRows is the number of leading rows kept as header rows, e.g. 2 for a name row followed
	// by a type row.
	HeaderRows int
	// Workers decodes records on that many goroutines when greater than one.
	Workers int
}

// Table holds header rows and records. It is the table-level view of a document: reading one
// splits and decodes every row, writing one encodes every row and joins them with Newline.
//
// The zero value is an empty comma-separated table.
type Table struct {
	Comma   byte
	Newline NewlineStyle
	Headers [][]string
	Records [][]string
}

// NewTable returns an empty table that writes with the given separator and newline style.
func NewTable(comma byte, newline NewlineStyle) *Table {
	return &Table{Comma: commaOrDefault(comma), Newline: newline}
}

// ReadTable decodes text into a table. Records narrower than the first header row are padded with
// empty cells; wider records are kept as they are.
func ReadTable(text string, opts TableOptions) *Table {
	comma := commaOrDefault(opts.Comma)
	t := NewTable(comma, opts.Newline)

	s := Splitter{Comma: comma, Multiline: opts.Multiline, Newline: opts.Newline}
	rows := s.Split(text, NoLimit)

	n := min(max(opts.HeaderRows, 0), len(rows))
	dec := Decoder{Comma: comma}
	for _, row := range rows[:n] {
		t.Headers = append(t.Headers, dec.Decode(row, 0))
	}

	width := t.Columns()
	t.Records = DecodeRows(rows[n:], comma, width, opts.Workers)
	for i, record := range t.Records {
		t.Records[i] = padRecord(record, width)
	}
	return t
}

// Columns returns the width of the first header row, or zero when the table has no header.
func (t *Table) Columns() int {
	if len(t.Headers) == 0 {
		return 0
	}
	return len(t.Headers[0])
}

// AddHeader appends a header row and returns t for chaining.
func (t *Table) AddHeader(cells ...string) *Table {
	t.Headers = append(t.Headers, cells)
	return t
}

// AddRecord appends a record and returns t for chaining.
func (t *Table) AddRecord(cells ...string) *Table {
	t.Records = append(t.Records, cells)
	return t
}

// Cell returns the value at record row and column col.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Records) {
		return "", false
	}
	record := t.Records[row]
	if col < 0 || col >= len(record) {
		return "", false
	}
	return record[col], true
}

// ColumnIndex returns the position of name in the first header row.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if len(t.Headers) == 0 {
		return -1, false
	}
	idx := slices.Index(t.Headers[0], name)
	return idx, idx >= 0
}

// RemoveHeader deletes the header row at index i.
func (t *Table) RemoveHeader(i int) error {
	if i < 0 || i >= len(t.Headers) {
		return indexError("RemoveHeader", i, len(t.Headers))
	}
	t.Headers = slices.Delete(t.Headers, i, i+1)
	return nil
}

// RemoveRecord deletes the record at index i.
func (t *Table) RemoveRecord(i int) error {
	if i < 0 || i >= len(t.Records) {
		return indexError("RemoveRecord", i, len(t.Records))
	}
	t.Records = slices.Delete(t.Records, i, i+1)
	return nil
}

// RemoveColumn deletes column i from every header row and record that has it. The index is checked
// against the widest row of the table.
func (t *Table) RemoveColumn(i int) error {
	width := t.width()
	if i < 0 || i >= width {
		return indexError("RemoveColumn", i, width)
	}
	for _, rows := range [][][]string{t.Headers, t.Records} {
		for r, row := range rows {
			if i < len(row) {
				rows[r] = slices.Delete(row, i, i+1)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of t that can be edited without touching t.
func (t *Table) Clone() *Table {
	c := &Table{Comma: t.Comma, Newline: t.Newline}
	c.Headers = cloneRows(t.Headers)
	c.Records = cloneRows(t.Records)
	return c
}

// String encodes the table, terminating every row with the table's newline token.
func (t *Table) String() string {
	var buf bytes.Buffer
	_, _ = t.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the encoded header rows followed by the records to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := NewWriter(cw)
	tw.Comma = commaOrDefault(t.Comma)
	tw.Newline = t.Newline
	if err := tw.WriteAll(t.Headers); err != nil {
		return cw.n, err
	}
	if err := tw.WriteAll(t.Records); err != nil {
		return cw.n, err
	}
	err := tw.Flush()
	return cw.n, err
}

func (t *Table) width() int {
	width := 0
	for _, rows := range [][][]string{t.Headers, t.Records} {
		for _, row := range rows {
			width = max(width, len(row))
		}
	}
	return width
}

func padRecord(record []string, width int) []string {
	for len(record) < width {
		record = append(record, "")
	}
	return record
}

func cloneRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
