// Package generate expands a relation schema into concrete graph edges
// under per-relation cardinality constraints and a connection probability.
//
// Reproducibility is the core contract: one PRNG draw is consumed per
// object, subject, or pair, in a fixed iteration order, so identical inputs
// and an identical seed yield a byte-identical graph document.
package generate

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/kgforge/kgforge/internal/graph"
	"github.com/kgforge/kgforge/internal/schema"
	"github.com/kgforge/kgforge/internal/triple"
)

// Config holds the generation parameters.
type Config struct {
	// Probability is the chance in [0,1] that an eligible connection is made.
	Probability float64
	// Seed seeds the PRNG stream. Nil seeds from wall time and makes the
	// run non-reproducible.
	Seed *int64
	// Policies supplies per-relation cardinality. Nil means every relation
	// is ManyToMany.
	Policies PolicySet
}

// Generator expands relations using a single shared PRNG stream.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New validates cfg and returns a Generator.
func New(cfg Config) (*Generator, error) {
	if cfg.Probability < 0 || cfg.Probability > 1 {
		return nil, fmt.Errorf("connection probability %v outside [0,1]", cfg.Probability)
	}
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}, nil
}

// Run expands every schema relation, in schema order, into its edge list.
// A relation whose subject or object type is missing from the catalog is
// skipped with a warning and contributes no document entry; a relation that
// passes the presence check keeps its key even when its edge list comes out
// empty.
func (g *Generator) Run(relations []triple.Triple, catalog schema.Catalog) graph.Document {
	var doc graph.Document
	for _, rel := range relations {
		subjects, ok := catalog[rel.Subject]
		if !ok {
			slog.Warn("relation references unknown subject type", "relation", rel.Key(), "type", rel.Subject)
			continue
		}
		objects, ok := catalog[rel.Object]
		if !ok {
			slog.Warn("relation references unknown object type", "relation", rel.Key(), "type", rel.Object)
			continue
		}
		doc.Append(rel, g.expand(rel, subjects, objects))
	}
	return doc
}

// expand emits the edges for one relation. Draw order is the contract:
// UniqueObject draws once per object in catalog order, UniqueSubject once
// per subject, ManyToMany once per subject-major ordered pair. The randomly
// chosen partner in the unique modes is uniform over the whole instance
// list; instances already connected are not excluded.
func (g *Generator) expand(rel triple.Triple, subjects, objects []string) []triple.Triple {
	if len(subjects) == 0 || len(objects) == 0 {
		return nil
	}
	var edges []triple.Triple
	switch g.cfg.Policies.Cardinality(rel) {
	case UniqueObject:
		for _, o := range objects {
			if g.rng.Float64() < g.cfg.Probability {
				s := subjects[g.rng.Intn(len(subjects))]
				edges = append(edges, triple.Triple{Subject: s, Predicate: rel.Predicate, Object: o})
			}
		}
	case UniqueSubject:
		for _, s := range subjects {
			if g.rng.Float64() < g.cfg.Probability {
				o := objects[g.rng.Intn(len(objects))]
				edges = append(edges, triple.Triple{Subject: s, Predicate: rel.Predicate, Object: o})
			}
		}
	default:
		for _, s := range subjects {
			for _, o := range objects {
				if g.rng.Float64() < g.cfg.Probability {
					edges = append(edges, triple.Triple{Subject: s, Predicate: rel.Predicate, Object: o})
				}
			}
		}
	}
	return edges
}
