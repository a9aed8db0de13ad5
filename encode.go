package tinycsv

// Encoder turns cells into row strings, quoting a cell only when it has to. It keeps scratch
// buffers between calls, so an Encoder must not be shared by concurrent goroutines.
type Encoder struct {
	// Comma is the field separator. Default is ','.
	Comma byte
	// Strict quotes any cell that contains a quote, producing RFC 4180 output. By default a cell whose
	// only special bytes are mid-field quotes is written unquoted with the quotes left single.
	Strict bool
	// AlwaysQuote quotes every cell.
	AlwaysQuote bool

	buf     []byte
	pending []int
}

// EncodeRow joins cells into one row with the lazy quoting policy. The row has no trailing
// separator or newline.
func EncodeRow(cells []string, comma byte) string {
	e := Encoder{Comma: comma}
	return e.Encode(cells)
}

// Encode returns cells as one row string.
func (e *Encoder) Encode(cells []string) string {
	e.buf = e.AppendRow(e.buf[:0], cells)
	return string(e.buf)
}

// AppendRow appends the encoded row to dst and returns the extended buffer.
func (e *Encoder) AppendRow(dst []byte, cells []string) []byte {
	comma := commaOrDefault(e.Comma)
	for i, cell := range cells {
		if i > 0 {
			dst = append(dst, comma)
		}
		dst = e.appendField(dst, cell, comma)
	}
	return dst
}

// appendField writes one cell in a single pass. Until a separator or newline byte shows up the cell
// is copied verbatim and the offset right after every quote is remembered. When quoting becomes
// necessary those offsets receive the doubling quote and the field start receives the opening one.
func (e *Encoder) appendField(dst []byte, cell string, comma byte) []byte {
	start := len(dst)
	quoting := false
	e.pending = e.pending[:0]

	if e.AlwaysQuote || (len(cell) > 0 && cell[0] == Quote) {
		quoting = true
		dst = append(dst, Quote)
	}

	for j := 0; j < len(cell); j++ {
		c := cell[j]
		switch {
		case c == Quote:
			if !quoting && e.Strict {
				dst = e.forceQuote(dst, start)
				quoting = true
			}
			dst = append(dst, c)
			if quoting {
				dst = append(dst, Quote)
			} else {
				e.pending = append(e.pending, len(dst))
			}
		case c == comma || isNewlineByte(c):
			if !quoting {
				dst = e.forceQuote(dst, start)
				quoting = true
			}
			dst = append(dst, c)
		default:
			dst = append(dst, c)
		}
	}

	if quoting {
		dst = append(dst, Quote)
	}
	return dst
}

// forceQuote retroactively quotes the field that begins at start: it inserts the opening quote at
// start and a doubling quote at every pending offset, moving each segment once from the back.
func (e *Encoder) forceQuote(dst []byte, start int) []byte {
	n := len(e.pending) + 1
	end := len(dst)
	for range n {
		dst = append(dst, 0)
	}

	shift := n
	for k := len(e.pending) - 1; k >= 0; k-- {
		p := e.pending[k]
		copy(dst[p+shift:end+shift], dst[p:end])
		shift--
		dst[p+shift] = Quote
		end = p
	}
	copy(dst[start+1:end+1], dst[start:end])
	dst[start] = Quote

	e.pending = e.pending[:0]
	return dst
}
