package tinycsv

import (
	"fmt"
	"runtime"
	"strings"
)

// Quote is the only quote character understood by the codec.
const Quote = '"'

const defaultComma = ','

const (
	lfToken   = "\n"
	crlfToken = "\r\n"
)

// NewlineStyle selects the newline convention used between rows.
//
// For writers it picks the emitted token. For readers and splitters it picks the accepted tokens:
// NewlinePlatform accepts both "\n" and "\r\n", the fixed styles accept only their own token.
type NewlineStyle int

const (
	// NewlinePlatform emits the operating system's newline and accepts both tokens when reading.
	NewlinePlatform NewlineStyle = iota
	// NewlineLF always uses "\n".
	NewlineLF
	// NewlineCRLF always uses "\r\n".
	NewlineCRLF
)

// String returns the name accepted by ParseNewlineStyle.
func (s NewlineStyle) String() string {
	switch s {
	case NewlinePlatform:
		return "platform"
	case NewlineLF:
		return "lf"
	case NewlineCRLF:
		return "crlf"
	default:
		return fmt.Sprintf("NewlineStyle(%d)", int(s))
	}
}

// Token returns the newline literal emitted for s.
func (s NewlineStyle) Token() string {
	switch s {
	case NewlineLF:
		return lfToken
	case NewlineCRLF:
		return crlfToken
	default:
		return platformNewline()
	}
}

// ParseNewlineStyle maps a style name ("platform", "lf", "crlf" and a few aliases) to a NewlineStyle.
func ParseNewlineStyle(name string) (NewlineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "platform", "environment", "auto":
		return NewlinePlatform, nil
	case "lf", "unix", `\n`:
		return NewlineLF, nil
	case "crlf", "windows", "nonunix", `\r\n`:
		return NewlineCRLF, nil
	}
	return NewlinePlatform, fmt.Errorf("tinycsv: unknown newline style %q", name)
}

func platformNewline() string {
	if runtime.GOOS == "windows" {
		return crlfToken
	}
	return lfToken
}

// acceptsLF reports whether a bare "\n" terminates a row under s.
func (s NewlineStyle) acceptsLF() bool {
	return s != NewlineCRLF
}

// acceptsCRLF reports whether "\r\n" terminates a row under s.
func (s NewlineStyle) acceptsCRLF() bool {
	return s != NewlineLF
}

// newlineAt returns the length of the newline token starting at text[i], or 0 when none does.
// Tokens are matched on their first byte and then confirmed at full length.
func (s NewlineStyle) newlineAt(text string, i int) int {
	switch text[i] {
	case '\n':
		if s.acceptsLF() {
			return len(lfToken)
		}
	case '\r':
		if s.acceptsCRLF() && i+1 < len(text) && text[i+1] == '\n' {
			return len(crlfToken)
		}
	}
	return 0
}

// isNewlineByte reports whether c can begin or continue a newline token.
func isNewlineByte(c byte) bool {
	return c == '\n' || c == '\r'
}

func commaOrDefault(c byte) byte {
	if c == 0 {
		return defaultComma
	}
	return c
}
