// Package store exports a finished run to an embedded database.
package store

import (
	"fmt"

	"profclust/internal/distance"
	"profclust/internal/profile"
)

// Export drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Exporter persists the final profiles and their distance matrix.
type Exporter interface {
	Export(profiles []profile.Profile, m *distance.Matrix) error
	Close() error
}

// Open returns the exporter for driver writing to path.
func Open(driver, path string) (Exporter, error) {
	var (
		ex  Exporter
		err error
	)
	switch driver {
	case DriverSQLite:
		ex, err = NewSQLite(path)
	case DriverBolt:
		ex, err = NewBolt(path)
	default:
		return nil, fmt.Errorf("unknown export driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// Drivers lists the supported export drivers.
func Drivers() []string { return []string{DriverSQLite, DriverBolt} }
