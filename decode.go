package tinycsv

// Decoder turns row strings into cells. It keeps a scratch buffer between calls, so a Decoder must
// not be shared by concurrent goroutines.
type Decoder struct {
	// Comma is the field separator. Default is ','.
	Comma byte

	buf []byte
}

// DecodeRow splits one row into its cells, unescaping quoted fields. capacity pre-sizes the result
// and never truncates it.
func DecodeRow(row string, comma byte, capacity int) []string {
	d := Decoder{Comma: comma}
	return d.Decode(row, capacity)
}

// Decode returns the cells of row in column order.
func (d *Decoder) Decode(row string, capacity int) []string {
	if capacity < 0 {
		capacity = 0
	}
	return d.AppendRow(make([]string, 0, capacity), row)
}

// AppendRow appends the cells of row to dst and returns the extended slice.
//
// Fields that do not open with a quote are returned as substrings of row, quotes included. Fields
// that open with a quote are rebuilt in the scratch buffer: a pair of quotes yields one quote and a
// separator only ends the field once its quote has been closed. The last field is always emitted,
// so an empty row decodes to a single empty cell.
func (d *Decoder) AppendRow(dst []string, row string) []string {
	comma := commaOrDefault(d.Comma)

	fieldStart := true
	escaped := false
	canClose := false
	start := 0
	d.buf = d.buf[:0]

	for i := 0; i < len(row); i++ {
		c := row[i]
		switch c {
		case Quote:
			switch {
			case fieldStart:
				escaped = true
			case escaped:
				if canClose {
					d.buf = append(d.buf, c)
				}
				canClose = !canClose
			}
		case comma:
			if !escaped || canClose {
				dst = d.appendField(dst, row[start:i], escaped)
				start = i + 1
				fieldStart = true
				escaped = false
				canClose = false
				continue
			}
			d.buf = append(d.buf, c)
		default:
			if escaped {
				d.buf = append(d.buf, c)
			}
		}
		fieldStart = false
	}
	return d.appendField(dst, row[start:], escaped)
}

func (d *Decoder) appendField(dst []string, raw string, escaped bool) []string {
	if !escaped {
		return append(dst, raw)
	}
	dst = append(dst, string(d.buf))
	d.buf = d.buf[:0]
	return dst
}
