// Package schema loads the relation schema and the instance catalog.
package schema

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kgforge/kgforge/internal/triple"
)

// Parse reads relation lines from r. Each non-blank line must be a
// parenthesized 3-tuple "(SubjectType,predicate,ObjectType)"; blank lines and
// lines that do not parse are skipped. Relation order follows file order and
// drives the generator's draw sequence.
func Parse(r io.Reader) ([]triple.Triple, error) {
	var relations []triple.Triple
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
			slog.Debug("skipping malformed schema line", "line", line)
			continue
		}
		rel, err := triple.Parse(line)
		if err != nil {
			slog.Debug("skipping malformed schema line", "line", line, "error", err)
			continue
		}
		relations = append(relations, rel)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return relations, nil
}

// Load reads the relation schema from path.
func Load(path string) ([]triple.Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Catalog maps a node type name to its ordered instance labels. Labels are
// assumed unique per type; that is not enforced.
type Catalog map[string][]string

// LoadCatalog reads the instance catalog JSON from path. Labels that cannot
// round-trip the triple encoding (paren or comma in the label) are dropped
// with a warning so they never reach a generated edge.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode instance catalog %s: %w", path, err)
	}
	for typ, labels := range c {
		kept := labels[:0]
		for _, label := range labels {
			if !triple.ValidLabel(label) {
				slog.Warn("dropping instance label with delimiter characters", "type", typ, "label", label)
				continue
			}
			kept = append(kept, label)
		}
		c[typ] = kept
	}
	return c, nil
}
