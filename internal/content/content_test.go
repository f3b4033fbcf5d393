package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const techsYAML = `
- name: LRN_ALGO_ELEGANCE
  category: LEARNING_CATEGORY
  research_cost: 10
  prerequisites: []
- name: GRO_PLANET_ECOL
  category: GROWTH_CATEGORY
  research_cost: 10
`

const speciesYAML = `
- name: SP_HUMAN
  environments: {ocean: good, tundra: poor}
  can_colonize: true
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"techs.yaml":    {Data: []byte(techsYAML)},
		"species.yaml":  {Data: []byte(speciesYAML)},
		"monsters.yaml": {Data: []byte("- name: SM_KRILL_1\n  hull: SH_KRILL_1_BODY\n")},
		"README.md":     {Data: []byte("ignored")},
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	lib, err := Load(testFS())
	require.NoError(t, err)

	assert.Equal(t, []string{DomainSpecies, DomainTechs, "monsters"}, lib.Domains())

	e, ok := lib.Lookup(DomainTechs, "GRO_PLANET_ECOL")
	require.True(t, ok)
	assert.Equal(t, "GROWTH_CATEGORY", e.Fields["category"])

	_, ok = lib.Lookup(DomainTechs, "SHP_WEAPON_1_1")
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "- name: [unclosed"},
		{"missing name", "- category: X\n"},
		{"duplicate", "- name: A\n- name: A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(fstest.MapFS{"techs.yaml": {Data: []byte(tt.data)}})
			assert.Error(t, err)
		})
	}
}

func TestComputeContentChecksums_Stable(t *testing.T) {
	t.Parallel()

	a, err := Load(testFS())
	require.NoError(t, err)
	b, err := Load(testFS())
	require.NoError(t, err)

	sumsA := a.ComputeContentChecksums()
	assert.Len(t, sumsA, 3)
	assert.Equal(t, sumsA, b.ComputeContentChecksums())
}

func TestComputeContentChecksums_DetectsChanges(t *testing.T) {
	t.Parallel()

	base, err := Load(testFS())
	require.NoError(t, err)

	changed := testFS()
	changed["techs.yaml"] = &fstest.MapFile{Data: []byte(`
- name: LRN_ALGO_ELEGANCE
  category: LEARNING_CATEGORY
  research_cost: 12
  prerequisites: []
- name: GRO_PLANET_ECOL
  category: GROWTH_CATEGORY
  research_cost: 10
`)}
	other, err := Load(changed)
	require.NoError(t, err)

	baseSums := base.ComputeContentChecksums()
	otherSums := other.ComputeContentChecksums()
	assert.NotEqual(t, baseSums[DomainTechs], otherSums[DomainTechs])
	assert.Equal(t, baseSums[DomainSpecies], otherSums[DomainSpecies])
}

func TestTableChecksum_IndependentOfLoadOrder(t *testing.T) {
	t.Parallel()

	t1 := Table{
		"A": {Name: "A", Fields: map[string]any{"x": 1}},
		"B": {Name: "B", Fields: map[string]any{"y": "z"}},
	}
	t2 := Table{
		"B": {Name: "B", Fields: map[string]any{"y": "z"}},
		"A": {Name: "A", Fields: map[string]any{"x": 1}},
	}

	s1, err := t1.Checksum()
	require.NoError(t, err)
	s2, err := t2.Checksum()
	require.NoError(t, err)
	assert.Equal(t, s1, s2)

	empty, err := Table{}.Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, s1, empty)
}

func TestTableChecksum_CountMatters(t *testing.T) {
	t.Parallel()

	one := Table{"A": {Name: "A"}}
	two := Table{"A": {Name: "A"}, "B": {Name: "B"}}

	s1, err := one.Checksum()
	require.NoError(t, err)
	s2, err := two.Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}
