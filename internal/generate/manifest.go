package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kgforge/kgforge/internal/graph"
)

// Manifest records the provenance of one generation run. The graph file
// itself stays byte-reproducible for a fixed seed; the manifest is the
// non-deterministic sidecar carrying run identity and counts.
type Manifest struct {
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	SchemaPath    string    `json:"schema_path"`
	InstancesPath string    `json:"instances_path"`
	OutputPath    string    `json:"output_path"`
	Probability   float64   `json:"probability"`
	Seed          *int64    `json:"seed"` // null when the run was not seeded
	Relations     int       `json:"relations"`
	Edges         int       `json:"edges"`
}

// NewManifest builds a manifest for a completed run.
func NewManifest(cfg Config, schemaPath, instancesPath, outputPath string, doc graph.Document) Manifest {
	return Manifest{
		RunID:         uuid.Must(uuid.NewV7()).String(),
		GeneratedAt:   time.Now().UTC(),
		SchemaPath:    schemaPath,
		InstancesPath: instancesPath,
		OutputPath:    outputPath,
		Probability:   cfg.Probability,
		Seed:          cfg.Seed,
		Relations:     len(doc.Entries),
		Edges:         doc.EdgeCount(),
	}
}

// WriteFile writes the manifest pretty-printed to path, creating
// intermediate directories as needed.
func (m Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
