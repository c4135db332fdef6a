package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration

	"profclust/internal/distance"
	"profclust/internal/profile"
)

// SQLite writes profiles and pairwise distances into two tables.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dataSourceName string) (*SQLite, error) {
	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000"
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to SQLite: %w", err)
	}
	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating tables: %w", err)
	}
	return &SQLite{db: db}, nil
}

func createTables(db *sql.DB) error {
	const schema = `
    CREATE TABLE IF NOT EXISTS profiles (
        idx INTEGER PRIMARY KEY,
        chrom TEXT NOT NULL,
        start_pos INTEGER NOT NULL,
        end_pos INTEGER NOT NULL,
        strand TEXT NOT NULL,
        annotation TEXT NOT NULL,
        score REAL NOT NULL DEFAULT 0,
        category TEXT NOT NULL,
        cluster INTEGER NOT NULL,
        position INTEGER NOT NULL
    );
    CREATE TABLE IF NOT EXISTS distances (
        i INTEGER NOT NULL,
        j INTEGER NOT NULL,
        distance REAL NOT NULL,
        PRIMARY KEY (i, j)
    );
    CREATE INDEX IF NOT EXISTS idx_profiles_cluster ON profiles(cluster);
    `
	_, err := db.Exec(schema)
	return err
}

// Export replaces any previous content in one transaction.
func (s *SQLite) Export(profiles []profile.Profile, m *distance.Matrix) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM profiles; DELETE FROM distances;`); err != nil {
		return err
	}
	ps, err := tx.Prepare(`INSERT INTO profiles (idx, chrom, start_pos, end_pos, strand, annotation, score, category, cluster, position)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ps.Close()
	for i := range profiles {
		p := &profiles[i]
		if _, err = ps.Exec(i, p.Chrom, p.Start, p.End, p.Strand.String(), p.Annotation, p.Score,
			p.Category.String(), p.Cluster, p.Position); err != nil {
			return fmt.Errorf("insert profile %d: %w", i, err)
		}
	}

	if m != nil {
		var ds *sql.Stmt
		if ds, err = tx.Prepare(`INSERT INTO distances (i, j, distance) VALUES (?, ?, ?)`); err != nil {
			return err
		}
		defer ds.Close()
		for i := 0; i < m.N(); i++ {
			for j := i + 1; j < m.N(); j++ {
				if _, err = ds.Exec(i, j, m.At(i, j)); err != nil {
					return fmt.Errorf("insert distance %d,%d: %w", i, j, err)
				}
			}
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
