package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"gridlife/config"
)

// OutputManager handles structured run output: a telemetry CSV plus a copy
// of the effective configuration for reproducibility. A nil *OutputManager
// is valid and disables output.
type OutputManager struct {
	dir  string
	file *os.File

	headerWritten bool
}

// NewOutputManager creates the output directory and the telemetry file.
// Returns nil (output disabled) when dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}

	return &OutputManager{dir: dir, file: f}, nil
}

// WriteConfig saves the effective configuration next to the telemetry.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends one window record to telemetry.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.headerWritten {
		om.headerWritten = true
		if err := gocsv.Marshal(records, om.file); err != nil {
			return fmt.Errorf("writing telemetry header: %w", err)
		}
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.file); err != nil {
		return fmt.Errorf("writing telemetry record: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.file.Close()
}
