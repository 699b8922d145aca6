// Package graph defines the generated-graph document and its JSON file form.
//
// The document is a single JSON object mapping relation keys to edge-string
// lists. Entry order is part of the byte-reproducibility contract (it mirrors
// schema order on generation), so the document keeps its entries as an
// ordered sequence and (un)marshals them without going through a Go map.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/kgforge/kgforge/internal/triple"
)

// Entry is one relation's edge list. Key and Edges hold the raw boundary
// strings; consumers re-parse them so malformed input can be skipped per
// entry instead of failing the whole document.
type Entry struct {
	Key   string
	Edges []string
}

// Document is a generated graph: relation entries in generation order.
type Document struct {
	Entries []Entry
}

// Append adds a relation and its edges, encoding both to the boundary form.
func (d *Document) Append(rel triple.Triple, edges []triple.Triple) {
	encoded := make([]string, len(edges))
	for i, e := range edges {
		encoded[i] = e.Key()
	}
	d.Entries = append(d.Entries, Entry{Key: rel.Key(), Edges: encoded})
}

// EdgeCount returns the total number of edges across all entries.
func (d Document) EdgeCount() int {
	n := 0
	for _, e := range d.Entries {
		n += len(e.Edges)
	}
	return n
}

// MarshalJSON writes the entries as one JSON object in entry order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		edges := e.Edges
		if edges == nil {
			edges = []string{}
		}
		val, err := json.Marshal(edges)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a graph object preserving key order, which keeps
// warning output and processing order deterministic for a given file.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &json.UnmarshalTypeError{Value: fmt.Sprintf("%v", tok), Type: reflect.TypeOf(Document{})}
	}
	d.Entries = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var edges []string
		if err := dec.Decode(&edges); err != nil {
			return err
		}
		d.Entries = append(d.Entries, Entry{Key: key, Edges: edges})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// ReadFile loads a graph document from path.
func ReadFile(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return Document{}, fmt.Errorf("decode graph %s: %w", path, err)
	}
	return d, nil
}

// WriteFile writes the document pretty-printed with 4-space indentation,
// creating intermediate directories as needed.
func WriteFile(path string, d Document) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
