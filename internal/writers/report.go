package writers

import (
	"bufio"
	"fmt"
	"io"

	"profclust/internal/jsonlutil"
	"profclust/internal/profile"
)

// WriteTSV emits chrom, start, end, annotation, score, strand, category and
// cluster, tab-separated, one profile per line.
func WriteTSV(w io.Writer, profiles []profile.Profile) error {
	bw := bufio.NewWriter(w)
	for i := range profiles {
		if _, err := fmt.Fprintln(bw, FormatRowTSV(&profiles[i])); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatRowTSV returns the 8 report columns (no trailing newline).
func FormatRowTSV(p *profile.Profile) string {
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%f\t%s\t%s\t%d",
		p.Chrom, p.Start, p.End, p.Annotation, p.Score, p.Strand, p.Category, p.Cluster)
}

// Row is the JSONL wire shape of one report line.
type Row struct {
	Chrom      string  `json:"chrom"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Annotation string  `json:"annotation"`
	Score      float64 `json:"score"`
	Strand     string  `json:"strand"`
	Category   string  `json:"category"`
	Cluster    int     `json:"cluster"`
}

func ToRow(p *profile.Profile) Row {
	return Row{
		Chrom: p.Chrom, Start: p.Start, End: p.End,
		Annotation: p.Annotation, Score: p.Score,
		Strand: p.Strand.String(), Category: p.Category.String(),
		Cluster: p.Cluster,
	}
}

// WriteJSONL emits one JSON object per profile with the same fields as the TSV.
func WriteJSONL(w io.Writer, profiles []profile.Profile) error {
	return jsonlutil.Encode(w, profiles, ToRow)
}
