package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"profclust/internal/distance"
	"profclust/internal/profile"
	"profclust/internal/writers"
)

var (
	bucketProfiles  = []byte("profiles")
	bucketDistances = []byte("distances")
)

// Bolt writes profiles (JSON, keyed by zero-padded index) and distances
// (keyed "i:j") into two buckets.
type Bolt struct {
	db *bbolt.DB
}

// boltProfile is the stored value: the report row plus the in-cluster position.
type boltProfile struct {
	writers.Row
	Position int `json:"position"`
}

func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return &Bolt{db: db}, nil
}

func ProfileKey(i int) []byte { return []byte(fmt.Sprintf("%09d", i)) }

func DistanceKey(i, j int) []byte { return []byte(fmt.Sprintf("%d:%d", i, j)) }

// Export replaces both buckets in one transaction.
func (s *Bolt) Export(profiles []profile.Profile, m *distance.Matrix) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketProfiles, bucketDistances} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
		}
		pb, err := tx.CreateBucket(bucketProfiles)
		if err != nil {
			return err
		}
		for i := range profiles {
			data, err := json.Marshal(boltProfile{Row: writers.ToRow(&profiles[i]), Position: profiles[i].Position})
			if err != nil {
				return err
			}
			if err := pb.Put(ProfileKey(i), data); err != nil {
				return err
			}
		}
		db, err := tx.CreateBucket(bucketDistances)
		if err != nil {
			return err
		}
		if m == nil {
			return nil
		}
		for i := 0; i < m.N(); i++ {
			for j := i + 1; j < m.N(); j++ {
				v := strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
				if err := db.Put(DistanceKey(i, j), []byte(v)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *Bolt) Close() error { return s.db.Close() }
