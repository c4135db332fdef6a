package store

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"go.etcd.io/bbolt"

	"profclust/internal/distance"
	"profclust/internal/profile"
)

func fixture() ([]profile.Profile, *distance.Matrix) {
	ps := []profile.Profile{
		{Chrom: "chr1", Start: 1, End: 5, Annotation: "Gene1", Score: 0.9, Category: profile.Known, Cluster: 1, Position: 0},
		{Chrom: "chr1", Start: 9, End: 12, Strand: profile.Reverse, Annotation: profile.Unknown, Cluster: 1, Position: 1},
		{Chrom: "chr3", Start: 2, End: 3, Annotation: profile.Unknown, Cluster: 2, Position: 0},
	}
	m := distance.NewMatrix(3)
	m.ZeroDiagonal()
	m.Set(0, 1, 0.1)
	m.Set(0, 2, 0.8)
	m.Set(1, 2, 0.7)
	return ps, m
}

func TestBoltExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.bolt")
	ex, err := Open(DriverBolt, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ps, m := fixture()
	if err := ex.Export(ps, m); err != nil {
		t.Fatalf("export: %v", err)
	}
	// exporting twice replaces content
	if err := ex.Export(ps, m); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if err := ex.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	err = db.View(func(tx *bbolt.Tx) error {
		if n := tx.Bucket(bucketProfiles).Stats().KeyN; n != 3 {
			t.Fatalf("profiles = %d", n)
		}
		var got boltProfile
		if err := json.Unmarshal(tx.Bucket(bucketProfiles).Get(ProfileKey(0)), &got); err != nil {
			return err
		}
		if got.Annotation != "Gene1" || got.Cluster != 1 || got.Category != "KNOWN" {
			t.Fatalf("profile 0 = %+v", got)
		}
		if v := string(tx.Bucket(bucketDistances).Get(DistanceKey(1, 2))); v != "0.7" {
			t.Fatalf("distance 1:2 = %q", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestSQLiteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	ex, err := Open(DriverSQLite, path)
	if err != nil {
		if strings.Contains(err.Error(), "cgo") {
			t.Skip("go-sqlite3 built without cgo")
		}
		t.Fatalf("open: %v", err)
	}
	defer ex.Close()
	ps, m := fixture()
	if err := ex.Export(ps, m); err != nil {
		t.Fatalf("export: %v", err)
	}
	db := ex.(*SQLite).db
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM distances`).Scan(&n); err != nil || n != 3 {
		t.Fatalf("distances = %d err=%v", n, err)
	}
	var label string
	var cluster int
	row := db.QueryRow(`SELECT annotation, cluster FROM profiles WHERE idx = ?`, 0)
	if err := row.Scan(&label, &cluster); err != nil || label != "Gene1" || cluster != 1 {
		t.Fatalf("profile 0 = %q/%d err=%v", label, cluster, err)
	}
}

func TestUnknownDriver(t *testing.T) {
	if _, err := Open("mongo", "x"); err == nil {
		t.Fatal("expected error")
	}
}
