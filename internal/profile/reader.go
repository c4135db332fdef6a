// internal/profile/reader.go
package profile

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/mdobak/go-xerrors"
)

// Profile lines can be very long (one column per base).
const maxLine = 64 * 1024 * 1024

type lineReader struct {
	sc   *bufio.Scanner
	path string
	line int
}

func newLineReader(r io.Reader, path string) lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return lineReader{sc: sc, path: path}
}

// next returns the next raw line, or io.EOF at a clean end of input.
func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", xerrors.New(fmt.Errorf("read %s: %w", lr.path, err))
		}
		return "", io.EOF
	}
	lr.line++
	return lr.sc.Text(), nil
}

func (lr *lineReader) malformed(err error) error {
	return xerrors.New(&FormatError{Path: lr.path, Line: lr.line, Err: err})
}

// ProfileReader decodes one profile per line.
type ProfileReader struct {
	lr  lineReader
	rng *rand.Rand
}

func NewProfileReader(r io.Reader, path string, rng *rand.Rand) *ProfileReader {
	return &ProfileReader{lr: newLineReader(r, path), rng: rng}
}

// Next returns the next profile; io.EOF marks a clean end of input.
func (r *ProfileReader) Next() (Profile, error) {
	line, err := r.lr.next()
	if err != nil {
		return Profile{}, err
	}
	p, err := DecodeProfile(line, r.rng)
	if err != nil {
		return Profile{}, r.lr.malformed(err)
	}
	return p, nil
}

// FeatureReader decodes one feature per line.
type FeatureReader struct{ lr lineReader }

func NewFeatureReader(r io.Reader, path string) *FeatureReader {
	return &FeatureReader{lr: newLineReader(r, path)}
}

func (r *FeatureReader) Next() (Feature, error) {
	line, err := r.lr.next()
	if err != nil {
		return Feature{}, err
	}
	f, err := DecodeFeature(line)
	if err != nil {
		return Feature{}, r.lr.malformed(err)
	}
	return f, nil
}

// ScoreReader decodes one precomputed score per line.
type ScoreReader struct{ lr lineReader }

func NewScoreReader(r io.Reader, path string) *ScoreReader {
	return &ScoreReader{lr: newLineReader(r, path)}
}

func (r *ScoreReader) Next() (float64, error) {
	line, err := r.lr.next()
	if err != nil {
		return 0, err
	}
	v, err := DecodeScore(line)
	if err != nil {
		return 0, r.lr.malformed(err)
	}
	return v, nil
}

// LoadProfiles reads every profile in path, in file order. Any malformed
// line aborts the whole load.
func LoadProfiles(path string, rng *rand.Rand) ([]Profile, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, xerrors.New(fmt.Errorf("open profiles: %w", err))
	}
	defer func() { _ = rc.Close() }()

	var list []Profile
	pr := NewProfileReader(rc, path, rng)
	for {
		p, err := pr.Next()
		switch Status(err) {
		case 0:
			return list, nil
		case -1:
			return nil, err
		}
		list = append(list, p)
	}
}

// ForEachFeature streams every feature in path to fn.
func ForEachFeature(path string, fn func(Feature) error) error {
	rc, err := Open(path)
	if err != nil {
		return xerrors.New(fmt.Errorf("open annotation: %w", err))
	}
	defer func() { _ = rc.Close() }()

	fr := NewFeatureReader(rc, path)
	for {
		f, err := fr.Next()
		switch Status(err) {
		case 0:
			return nil
		case -1:
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
	}
}
