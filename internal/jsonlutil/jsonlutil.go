// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Buffered writers are pooled; reports are written once per run but tests
// and exports may call Encode many times.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Encode writes one JSON document per element of items, converting each to
// its wire type with conv first.
func Encode[T, W any](out io.Writer, items []T, conv func(*T) W) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	for i := range items {
		if err := enc.Encode(conv(&items[i])); err != nil {
			return err
		}
	}
	return bw.Flush()
}
