// internal/profile/types.go
package profile

import "fmt"

// Unknown is the annotation label carried by a profile until an overlapping
// feature or a cluster-mate provides a real one.
const Unknown = "unknown"

// Strand of a profile or feature.
type Strand int

const (
	Forward Strand = iota
	Reverse
)

var strandSymbols = [2]string{"+", "-"}

func (s Strand) String() string { return strandSymbols[s&1] }

// ParseStrand accepts only "+" and "-".
func ParseStrand(sym string) (Strand, bool) {
	switch sym {
	case "+":
		return Forward, true
	case "-":
		return Reverse, true
	}
	return Forward, false
}

// Category marks whether a profile/feature is novel or known.
type Category int

const (
	Novel Category = iota
	Known
)

var categoryLabels = [2]string{"NOVEL", "KNOWN"}

func (c Category) String() string { return categoryLabels[c&1] }

// Profile is a per-locus numeric signal bound to a genomic interval.
// len(Signal) is always End-Start+1.
type Profile struct {
	Chrom  string
	Start  int
	End    int
	Strand Strand

	Signal []float64
	Noise  []float64

	Annotation string
	Score      float64
	Category   Category

	Cluster  int // -1 until clustered
	Position int // -1 until clustered

	Differential bool
	Partner      *Profile // non-owning
}

// Len is the interval length (inclusive coordinates).
func (p *Profile) Len() int { return p.End - p.Start + 1 }

// ID renders the coordinate header "chrom:start-end:strand".
func (p *Profile) ID() string {
	return fmt.Sprintf("%s:%d-%d:%s", p.Chrom, p.Start, p.End, p.Strand)
}

// Annotated reports whether the profile carries a label other than Unknown.
func (p *Profile) Annotated() bool { return p.Annotation != Unknown }

// Feature is a read-only annotation source interval.
type Feature struct {
	Chrom   string
	Start   int
	End     int
	Name    string
	Score   float64
	Strand  Strand
	Status  Category
	Cluster int
}
