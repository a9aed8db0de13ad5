package tinycsv

import (
	"io"
	"strings"
	"unsafe"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// Reader streams decoded rows from an io.Reader. Row boundaries and cell values follow the same
// rules as Splitter and Decoder; the only errors returned come from the underlying source.
type Reader struct {
	src io.Reader

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Multiline keeps quoted cells with embedded newlines inside one row.
	Multiline bool
	// Newline selects the accepted newline tokens.
	Newline NewlineStyle
	// ReuseRecord indicates whether Read should reuse the backing array of the returned slice.
	// Cells of a reused record are only valid until the next call to Read.
	ReuseRecord bool

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	line     []byte
	record   []string
	dec      Decoder
	state    fieldState
	finished bool
}

// NewReader creates a Reader that consumes data from r, panicking if r is nil. Multi-line cells are
// supported by default.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("tinycsv: reader source cannot be nil")
	}

	return &Reader{
		src:       r,
		Comma:     defaultComma,
		Multiline: true,
		buf:       make([]byte, defaultBufferSize),
		line:      make([]byte, 0, 512),
		record:    make([]string, 0, 16),
	}
}

// Read returns the cells of the next non-empty row. io.EOF signals that no more rows remain.
func (r *Reader) Read() (record []string, err error) {
	if r == nil || r.src == nil || r.finished {
		return nil, io.EOF
	}

	comma := commaOrDefault(r.Comma)
	r.line = r.line[:0]
	r.state.reset()

	for {
		c, err := r.readByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			r.finished = true
			if len(r.line) == 0 {
				return nil, io.EOF
			}
			return r.buildRecord(comma), nil
		}

		if isNewlineByte(c) && (!r.Multiline || r.state.canBreak()) {
			isBreak, err := r.consumeNewline(c)
			if err != nil {
				return nil, err
			}
			if isBreak {
				if len(r.line) > 0 {
					return r.buildRecord(comma), nil
				}
				r.state.reset()
				continue
			}
		}

		if r.Multiline {
			r.state.observe(c, comma)
		}
		r.line = append(r.line, c)
	}
}

// ReadAll exhausts the reader, repeatedly calling Read to collect rows until io.EOF and returning
// the accumulated records plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if r.ReuseRecord {
			record = cloneRecord(record)
		}
		records = append(records, record)
	}
}

// cloneRecord detaches a reused record from the line buffer.
func cloneRecord(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = strings.Clone(cell)
	}
	return out
}

// consumeNewline reports whether c starts an accepted newline token, consuming the rest of the token
// when it does.
func (r *Reader) consumeNewline(c byte) (bool, error) {
	if c == '\n' {
		return r.Newline.acceptsLF(), nil
	}
	if !r.Newline.acceptsCRLF() {
		return false, nil
	}
	next, err := r.peekByte()
	if err != nil && err != io.EOF {
		return false, err
	}
	if err == nil && next == '\n' {
		r.bufPos++
		return true, nil
	}
	return false, nil
}

// buildRecord decodes the buffered row, respecting ReuseRecord.
func (r *Reader) buildRecord(comma byte) []string {
	var row string
	if r.ReuseRecord {
		// Zero-copy string so unescaped cells share the line buffer until the next Read.
		row = unsafe.String(unsafe.SliceData(r.line), len(r.line))
		r.record = r.record[:0]
	} else {
		row = string(r.line)
		r.record = nil
	}
	r.dec.Comma = comma
	r.record = r.dec.AppendRow(r.record, row)
	return r.record
}

func (r *Reader) readByte() (byte, error) {
	if _, err := r.peekByte(); err != nil {
		return 0, err
	}
	b := r.buf[r.bufPos]
	r.bufPos++
	return b, nil
}

// peekByte returns the next buffered byte (refilling from src as needed) and propagates any read error.
func (r *Reader) peekByte() (byte, error) {
	for {
		if r.bufPos < r.bufLen {
			return r.buf[r.bufPos], nil
		}
		if r.bufErr != nil {
			return 0, r.bufErr
		}
		if len(r.buf) == 0 {
			r.buf = make([]byte, defaultBufferSize)
		}

		n, err := r.src.Read(r.buf)
		r.bufPos = 0
		r.bufLen = n
		r.bufErr = err
	}
}
