package normalize

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgforge/kgforge/internal/graph"
)

// Fixed md5-derived identifiers for the labels used below.
var (
	idCity    = mustInt("116724596447108404032484318817010541951")
	idCompany = mustInt("37835212374841100311571673195833345056")
	idNyc     = mustInt("267514810025479626038732322536717957190")
	idAcme    = mustInt("111306719012139150994544839664065696678")
)

func mustInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad integer literal: " + s)
	}
	return n
}

func decode(t *testing.T, raw string) graph.Document {
	t.Helper()
	var doc graph.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestRun_SingleEdge(t *testing.T) {
	doc := decode(t, `{"(City,companyLocation,Company)": ["(nyc,companyLocation,acme)"]}`)

	res := Run(doc)

	assert.Equal(t, 2, res.NodeTypes.Len())
	assert.Equal(t, 1, res.EdgeTypes.Len())
	assert.Equal(t, 2, res.Instances.Len())
	assert.Equal(t, idCity, res.NodeTypes.ID("City"))
	assert.Equal(t, idCompany, res.NodeTypes.ID("Company"))

	require.Len(t, res.TypeInstances[idCity.String()], 1)
	assert.Equal(t, 0, idNyc.Cmp(res.TypeInstances[idCity.String()][0]))
	require.Len(t, res.TypeInstances[idCompany.String()], 1)
	assert.Equal(t, 0, idAcme.Cmp(res.TypeInstances[idCompany.String()][0]))

	assert.Equal(t, []string{"nyc"}, res.TypeInstanceLabels["City"])
	assert.Equal(t, []string{"acme"}, res.TypeInstanceLabels["Company"])
}

func TestRun_DuplicatesAbsorbed(t *testing.T) {
	doc := decode(t, `{
		"(Person,worksFor,Company)": [
			"(alice,worksFor,acme)",
			"(alice,worksFor,initech)",
			"(bob,worksFor,acme)"
		]
	}`)

	res := Run(doc)

	// alice as subject twice and acme as object twice: two notices, set
	// membership unchanged.
	assert.Equal(t, 2, res.Duplicates)
	assert.Equal(t, []string{"alice", "bob"}, res.TypeInstanceLabels["Person"])
	assert.Equal(t, []string{"acme", "initech"}, res.TypeInstanceLabels["Company"])
}

func TestRun_SharedInstanceNamespace(t *testing.T) {
	// The same label reached through two different types resolves to one
	// instance table entry.
	doc := decode(t, `{
		"(Person,admires,Legend)": ["(alice,admires,turing)"],
		"(Legend,taught,Person)": ["(turing,taught,bob)"]
	}`)

	res := Run(doc)

	assert.Equal(t, 3, res.Instances.Len())
	assert.Equal(t, []string{"turing"}, res.TypeInstanceLabels["Legend"])
	assert.Equal(t, []string{"alice", "bob"}, res.TypeInstanceLabels["Person"])
}

func TestRun_MalformedEntriesSkipped(t *testing.T) {
	doc := decode(t, `{
		"(City,companyLocation)": ["(nyc,companyLocation,acme)"],
		"(Person,bornIn,City)": ["(alice,bornIn)", "(bob,bornIn,nyc)"]
	}`)

	res := Run(doc)

	assert.Equal(t, 1, res.RelationsSkipped)
	assert.Equal(t, 1, res.EdgesSkipped)
	assert.Equal(t, []string{"bob"}, res.TypeInstanceLabels["Person"])
	assert.Equal(t, []string{"nyc"}, res.TypeInstanceLabels["City"])
}

func TestRun_EmptyEdgeListRegistersTypes(t *testing.T) {
	doc := decode(t, `{"(Dean,leads,College)": []}`)

	res := Run(doc)

	assert.Equal(t, 2, res.NodeTypes.Len())
	assert.Equal(t, []string{}, res.TypeInstanceLabels["Dean"])
	assert.Equal(t, []string{}, res.TypeInstanceLabels["College"])
	assert.Empty(t, res.TypeInstances[res.NodeTypes.ID("Dean").String()])
}

func TestRun_SortedAscending(t *testing.T) {
	doc := decode(t, `{
		"(Person,knows,Person)": [
			"(zed,knows,alice)",
			"(mallory,knows,bob)",
			"(alice,knows,zed)"
		]
	}`)

	res := Run(doc)

	assert.Equal(t, []string{"alice", "bob", "mallory", "zed"}, res.TypeInstanceLabels["Person"])

	ids := res.TypeInstances[res.NodeTypes.ID("Person").String()]
	require.Len(t, ids, 4)
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, ids[i-1].Cmp(ids[i]), "ids must be strictly ascending")
	}
}

func TestRun_Deterministic(t *testing.T) {
	raw := `{
		"(Person,worksFor,Company)": ["(alice,worksFor,acme)", "(bob,worksFor,acme)"],
		"(City,companyLocation,Company)": ["(nyc,companyLocation,acme)"]
	}`

	first := Run(decode(t, raw))
	second := Run(decode(t, raw))

	a, err := json.Marshal(first.TypeInstances)
	require.NoError(t, err)
	b, err := json.Marshal(second.TypeInstances)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_RoundTripIDsDeriveFromLabels(t *testing.T) {
	doc := decode(t, `{
		"(Person,bornIn,City)": ["(alice,bornIn,nyc)", "(bob,bornIn,boston)"]
	}`)

	res := Run(doc)

	for _, typeLabel := range []string{"Person", "City"} {
		typeID := res.NodeTypes.ID(typeLabel).String()
		labels := res.TypeInstanceLabels[typeLabel]
		ids := res.TypeInstances[typeID]
		require.Len(t, ids, len(labels))

		derived := make(map[string]bool, len(labels))
		for _, label := range labels {
			derived[res.Instances.ID(label).String()] = true
		}
		for _, id := range ids {
			assert.True(t, derived[id.String()], "instance ID %s must derive from a label of %s", id, typeLabel)
		}
	}
}

func TestWriteFiles(t *testing.T) {
	doc := decode(t, `{"(City,companyLocation,Company)": ["(nyc,companyLocation,acme)"]}`)
	dir := filepath.Join(t.TempDir(), "tables")

	require.NoError(t, Run(doc).WriteFiles(dir))

	for _, name := range []string{
		FileNodeTypes,
		FileEdgeTypes,
		FileInstances,
		FileTypeInstances,
		FileTypeInstanceLabels,
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}
