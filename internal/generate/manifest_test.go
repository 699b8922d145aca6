package generate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgforge/kgforge/internal/graph"
	"github.com/kgforge/kgforge/internal/triple"
)

func TestNewManifest(t *testing.T) {
	var doc graph.Document
	doc.Append(triple.Triple{Subject: "Person", Predicate: "bornIn", Object: "City"}, []triple.Triple{
		{Subject: "alice", Predicate: "bornIn", Object: "nyc"},
		{Subject: "bob", Predicate: "bornIn", Object: "nyc"},
	})

	seed := int64(42)
	m := NewManifest(Config{Probability: 0.5, Seed: &seed}, "schema.txt", "instances.json", "kg.json", doc)

	_, err := uuid.Parse(m.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 1, m.Relations)
	assert.Equal(t, 2, m.Edges)
	assert.Equal(t, 0.5, m.Probability)
	require.NotNil(t, m.Seed)
	assert.Equal(t, seed, *m.Seed)
}

func TestManifest_WriteFile_UnseededRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "manifest.json")

	m := NewManifest(Config{Probability: 1}, "schema.txt", "instances.json", "kg.json", graph.Document{})
	require.NoError(t, m.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	// An unseeded run is declared non-reproducible with an explicit null.
	seed, present := decoded["seed"]
	assert.True(t, present)
	assert.Nil(t, seed)
}
