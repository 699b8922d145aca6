// Package ident assigns deterministic numeric identifiers to labels.
//
// An identifier is the big-endian unsigned integer value of the 128-bit MD5
// digest of the label's UTF-8 bytes. It depends only on the label content,
// never on insertion order or any per-run counter, so independent runs over
// the same data agree on every identifier. Hash collisions are a
// cryptographically negligible, accepted risk and are not detected.
package ident

import (
	"crypto/md5"
	"encoding/json"
	"math/big"
)

// Table memoizes label→identifier assignments for one namespace. Node
// types, edge types, and instances each get their own Table; the same
// literal label in two namespaces hashes to the same value but is recorded
// separately.
type Table struct {
	ids map[string]*big.Int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{ids: make(map[string]*big.Int)}
}

// ID returns the identifier for label, computing and recording it on first
// sight.
func (t *Table) ID(label string) *big.Int {
	if id, ok := t.ids[label]; ok {
		return id
	}
	sum := md5.Sum([]byte(label))
	id := new(big.Int).SetBytes(sum[:])
	t.ids[label] = id
	return id
}

// Len returns the number of distinct labels recorded.
func (t *Table) Len() int { return len(t.ids) }

// MarshalJSON encodes the table as a label→identifier object, identifiers
// as JSON numbers.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ids)
}
