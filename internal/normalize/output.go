package normalize

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Output file names, fixed relative to the output directory.
const (
	FileNodeTypes          = "map_node_types.json"
	FileEdgeTypes          = "map_edge_types.json"
	FileInstances          = "map_instances.json"
	FileTypeInstances      = "node_type_instances.json"
	FileTypeInstanceLabels = "node_type_instances_labels.json"
)

// WriteFiles writes the five result tables into dir, pretty-printed with
// 4-space indentation, creating dir if needed.
func (r *Result) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := []struct {
		name  string
		table any
	}{
		{FileNodeTypes, r.NodeTypes},
		{FileEdgeTypes, r.EdgeTypes},
		{FileInstances, r.Instances},
		{FileTypeInstances, r.TypeInstances},
		{FileTypeInstanceLabels, r.TypeInstanceLabels},
	}
	for _, f := range files {
		data, err := json.MarshalIndent(f.table, "", "    ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return err
		}
		slog.Info("wrote mapping table", "path", path)
	}
	return nil
}
