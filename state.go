package tinycsv

// fieldState tracks whether the scanner sits inside an open quoted field while rows are split.
// The splitter and the streaming reader share it so both agree on where a row ends.
type fieldState struct {
	// start is true only for the byte right after a separator, a row break or the start of input.
	start bool
	// quoted is true once the current field opened with a quote.
	quoted bool
	// closed toggles on every quote after the opening one; true means quote parity is even again.
	closed bool
}

func newFieldState() fieldState {
	return fieldState{start: true}
}

func (f *fieldState) reset() {
	*f = fieldState{start: true}
}

// canBreak reports whether a separator or newline at the current position is structural.
func (f *fieldState) canBreak() bool {
	return !f.quoted || f.closed
}

// observe advances the state over one byte that has been appended to the row.
func (f *fieldState) observe(c, comma byte) {
	switch c {
	case Quote:
		if f.start {
			f.quoted = true
		} else if f.quoted {
			f.closed = !f.closed
		}
	case comma:
		if f.canBreak() {
			f.reset()
			return
		}
	}
	f.start = false
}
