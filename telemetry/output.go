package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/particles"
)

// ParticleRow is one particle as written to particles.csv.
type ParticleRow struct {
	Generation int `csv:"generation"`
	particles.Particle
}

// OutputManager writes generated fields as CSV.
type OutputManager struct {
	dir          string
	fieldsFile   *os.File
	particleFile *os.File

	// Track if headers have been written
	fieldsHeaderWritten   bool
	particleHeaderWritten bool

	generation int
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "fields.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating fields.csv: %w", err)
	}
	om.fieldsFile = f

	f, err = os.Create(filepath.Join(dir, "particles.csv"))
	if err != nil {
		om.fieldsFile.Close()
		return nil, fmt.Errorf("creating particles.csv: %w", err)
	}
	om.particleFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteField appends one generation: a stats row to fields.csv and one row per
// particle to particles.csv. It returns the stats written.
func (om *OutputManager) WriteField(field particles.ParticleField, bins int) (FieldStats, error) {
	stats := ComputeFieldStats(field, bins)
	if om == nil {
		return stats, nil
	}

	om.generation++
	stats.Generation = om.generation

	if err := writeRows(om.fieldsFile, []FieldStats{stats}, &om.fieldsHeaderWritten); err != nil {
		return stats, fmt.Errorf("writing field stats: %w", err)
	}

	rows := make([]ParticleRow, field.Len())
	for i := range rows {
		rows[i] = ParticleRow{Generation: om.generation, Particle: field.At(i)}
	}
	if len(rows) > 0 {
		if err := writeRows(om.particleFile, rows, &om.particleHeaderWritten); err != nil {
			return stats, fmt.Errorf("writing particles: %w", err)
		}
	}
	return stats, nil
}

// writeRows marshals records, including the header only on the first write.
func writeRows(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.fieldsFile, om.particleFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
