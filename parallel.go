package tinycsv

import "sync"

// DecodeRows decodes every row with up to workers goroutines. Each worker owns a Decoder and writes
// into its own slots of the result, so the output keeps the order of rows. workers <= 1 decodes on
// the calling goroutine.
func DecodeRows(rows []string, comma byte, capacity, workers int) [][]string {
	out := make([][]string, len(rows))
	if len(rows) == 0 {
		return out
	}
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers <= 1 {
		decodeRange(out, rows, comma, capacity)
		return out
	}

	chunk := (len(rows) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(rows); lo += chunk {
		hi := min(lo+chunk, len(rows))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			decodeRange(out[lo:hi], rows[lo:hi], comma, capacity)
		}(lo, hi)
	}
	wg.Wait()
	return out
}

func decodeRange(dst [][]string, rows []string, comma byte, capacity int) {
	d := Decoder{Comma: comma}
	for i, row := range rows {
		dst[i] = d.Decode(row, capacity)
	}
}
