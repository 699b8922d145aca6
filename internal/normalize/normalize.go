// Package normalize derives deterministic identifier tables and
// type→instance indexes from a generated graph.
//
// Identifiers come from content hashing (see package ident), so two runs
// over the same graph produce identical tables regardless of entry order.
// Aggregation is set-based: a duplicate instance observation is counted and
// debug-logged but absorbed, never an error.
package normalize

import (
	"log/slog"
	"math/big"
	"slices"

	"github.com/kgforge/kgforge/internal/graph"
	"github.com/kgforge/kgforge/internal/ident"
	"github.com/kgforge/kgforge/internal/triple"
)

// Result holds the five output tables of one normalization run plus the
// skip and duplicate counters.
type Result struct {
	NodeTypes *ident.Table // node-type label → ID
	EdgeTypes *ident.Table // predicate label → ID
	Instances *ident.Table // instance label → ID, one namespace across all types

	// TypeInstances maps a node-type ID (decimal string) to the ascending
	// IDs of every instance observed as subject or object of that type.
	TypeInstances map[string][]*big.Int
	// TypeInstanceLabels is the label-keyed counterpart, lexicographically
	// sorted.
	TypeInstanceLabels map[string][]string

	RelationsSkipped int
	EdgesSkipped     int
	Duplicates       int
}

type accumulator struct {
	res    *Result
	ids    map[string]map[string]*big.Int // type ID → instance ID → value
	labels map[string]map[string]struct{} // type label → instance labels
}

func (a *accumulator) ensureType(label string, id *big.Int) {
	key := id.String()
	if _, ok := a.ids[key]; !ok {
		a.ids[key] = make(map[string]*big.Int)
	}
	if _, ok := a.labels[label]; !ok {
		a.labels[label] = make(map[string]struct{})
	}
}

func (a *accumulator) observe(typeLabel string, typeID *big.Int, instLabel string) {
	instID := a.res.Instances.ID(instLabel)
	set := a.ids[typeID.String()]
	if _, dup := set[instID.String()]; dup {
		slog.Debug("duplicate instance observed", "instance", instLabel, "type", typeLabel)
		a.res.Duplicates++
	}
	set[instID.String()] = instID
	a.labels[typeLabel][instLabel] = struct{}{}
}

// Run scans the graph document and accumulates the mapping tables.
// Malformed relation keys and edge strings are skipped with a warning; the
// run continues to completion. The middle component of an edge string is
// parsed but unused.
func Run(doc graph.Document) *Result {
	res := &Result{
		NodeTypes:          ident.NewTable(),
		EdgeTypes:          ident.NewTable(),
		Instances:          ident.NewTable(),
		TypeInstances:      make(map[string][]*big.Int),
		TypeInstanceLabels: make(map[string][]string),
	}
	acc := &accumulator{
		res:    res,
		ids:    make(map[string]map[string]*big.Int),
		labels: make(map[string]map[string]struct{}),
	}

	for _, entry := range doc.Entries {
		rel, err := triple.Parse(entry.Key)
		if err != nil {
			slog.Warn("skipping malformed relation key", "key", entry.Key, "error", err)
			res.RelationsSkipped++
			continue
		}
		subjTypeID := res.NodeTypes.ID(rel.Subject)
		objTypeID := res.NodeTypes.ID(rel.Object)
		res.EdgeTypes.ID(rel.Predicate)
		acc.ensureType(rel.Subject, subjTypeID)
		acc.ensureType(rel.Object, objTypeID)

		for _, raw := range entry.Edges {
			edge, err := triple.Parse(raw)
			if err != nil {
				slog.Warn("skipping malformed edge", "edge", raw, "key", entry.Key, "error", err)
				res.EdgesSkipped++
				continue
			}
			acc.observe(rel.Subject, subjTypeID, edge.Subject)
			acc.observe(rel.Object, objTypeID, edge.Object)
		}
	}

	for typeID, set := range acc.ids {
		ids := make([]*big.Int, 0, len(set))
		for _, id := range set {
			ids = append(ids, id)
		}
		slices.SortFunc(ids, (*big.Int).Cmp)
		res.TypeInstances[typeID] = ids
	}
	for typeLabel, set := range acc.labels {
		labels := make([]string, 0, len(set))
		for label := range set {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		res.TypeInstanceLabels[typeLabel] = labels
	}
	return res
}
