// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"profclust/internal/profile"
)

// Report formats.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// ReportFunc writes one record per profile.
type ReportFunc func(w io.Writer, profiles []profile.Profile) error

type entry struct {
	fn   ReportFunc
	file string
}

// Report writer registry (format → handler). Last registration wins.
var reports = map[string]entry{}

// Register adds a report format and the file name it is written to.
func Register(format, fileName string, fn ReportFunc) {
	reports[format] = entry{fn: fn, file: fileName}
}

func init() {
	Register(FormatTSV, "annotated.tsv", WriteTSV)
	Register(FormatJSONL, "annotated.jsonl", WriteJSONL)
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, profiles []profile.Profile) error {
	e, ok := reports[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return e.fn(w, profiles)
}

// FileName is the report file name for format, or "" when unknown.
func FileName(format string) string { return reports[format].file }

// Formats lists registered formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(reports))
	for f := range reports {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Known reports whether format has a registered writer.
func Known(format string) bool {
	_, ok := reports[format]
	return ok
}
