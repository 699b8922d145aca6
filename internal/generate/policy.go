package generate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kgforge/kgforge/internal/triple"
)

// Cardinality constrains how many edges of a relation one side may join.
type Cardinality int

const (
	// ManyToMany makes every subject×object pair independently eligible.
	ManyToMany Cardinality = iota
	// UniqueSubject allows at most one edge per subject instance.
	UniqueSubject
	// UniqueObject allows at most one edge per object instance.
	UniqueObject
)

func (c Cardinality) String() string {
	switch c {
	case UniqueSubject:
		return "unique_subject"
	case UniqueObject:
		return "unique_object"
	default:
		return "many_to_many"
	}
}

// PolicySet maps a relation key to its cardinality. Relations absent from
// the set are ManyToMany. A nil PolicySet is valid and constrains nothing.
type PolicySet map[string]Cardinality

// Cardinality returns the policy for rel.
func (p PolicySet) Cardinality(rel triple.Triple) Cardinality {
	return p[rel.Key()]
}

// policyFile is the YAML form: relation keys listed under the constraint
// they carry.
type policyFile struct {
	UniqueSubject []string `yaml:"unique_subject"`
	UniqueObject  []string `yaml:"unique_object"`
}

// LoadPolicyFile reads a YAML cardinality policy file. Relation keys are
// normalized through the triple codec so spacing variants of the same key
// match. A relation listed under both constraints is an error.
func LoadPolicyFile(path string) (PolicySet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf policyFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("decode policy file %s: %w", path, err)
	}
	set := make(PolicySet, len(pf.UniqueSubject)+len(pf.UniqueObject))
	for _, key := range pf.UniqueSubject {
		rel, err := triple.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("policy file %s: unique_subject: %w", path, err)
		}
		set[rel.Key()] = UniqueSubject
	}
	for _, key := range pf.UniqueObject {
		rel, err := triple.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("policy file %s: unique_object: %w", path, err)
		}
		if set[rel.Key()] == UniqueSubject {
			return nil, fmt.Errorf("policy file %s: relation %s listed under both unique_subject and unique_object", path, rel.Key())
		}
		set[rel.Key()] = UniqueObject
	}
	return set, nil
}
