// # TinyCSV: A Tolerant Lazy-Quoting CSV Codec for Go
//
// TinyCSV encodes and decodes delimiter-separated tabular text. It never rejects input: ambiguous
// quoting resolves through a deterministic state machine instead of a parse error, and the encoder
// quotes a cell only once it sees a byte that makes quoting necessary.
//
// # Features
//
// - Row splitting with optional support for quoted cells spanning several physical lines.
// - Eager (`SplitRows`, `Splitter.Split`) and lazy (`Splitter.All`) row sequences with an optional row cap.
// - Cell decoding that collapses doubled quotes and keeps bare mid-field quotes verbatim.
// - Single-pass lazy-quoting encoder that patches already emitted output when quoting becomes necessary.
// - Configurable separator byte and newline style (`NewlinePlatform`, `NewlineLF`, `NewlineCRLF`).
// - Streaming `Reader` and buffered `Writer`, an order-preserving parallel row decoder, and a `Table` type
//   holding header rows and records.
//
// # Asymmetry
//
// A cell such as `a"b` that contains a quote but no separator or newline is written unquoted, with the
// quote left single. This is not valid RFC 4180 output, but the decoder reads it back unchanged because
// quotes inside an unescaped field are passed through literally. Set `Encoder.Strict` to quote such
// cells instead.
//
// # Concurrency
//
// Package-level functions are safe for concurrent use. `Decoder`, `Encoder`, `Reader`, `Writer` and
// `Table` values own scratch state and must not be used from several goroutines at once.
package tinycsv
