package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/substep/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir        string
	motionFile *os.File

	motionHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	motionPath := filepath.Join(dir, "motion.csv")
	f, err := os.Create(motionPath)
	if err != nil {
		return nil, fmt.Errorf("creating motion.csv: %w", err)
	}
	om.motionFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML alongside the CSV.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteMotion appends a window stats record to motion.csv.
func (om *OutputManager) WriteMotion(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.motionHeaderWritten {
		if err := gocsv.Marshal(records, om.motionFile); err != nil {
			return fmt.Errorf("writing motion stats: %w", err)
		}
		om.motionHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.motionFile); err != nil {
		return fmt.Errorf("writing motion stats: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.motionFile == nil {
		return nil
	}
	return om.motionFile.Close()
}
