package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeGenerator emits a fixed set of records; used to test the assembler in
// isolation.
type fakeGenerator struct {
	records   []Record
	fileBased bool
}

func (g *fakeGenerator) Name() string { return "fakeGenerator" }

func (g *fakeGenerator) GenerateLabels(input string, training bool, emit func(Record) error) error {
	for _, r := range g.records {
		r.Training = training
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}

func (g *fakeGenerator) IsFileBased() bool { return g.fileBased }

func TestCapabilityDefaults(t *testing.T) {
	g := NewDirectoryGenerator()
	assert.True(t, IsFileBased(g))
	assert.True(t, ContainsTestData(g))
	assert.False(t, ReturnsMultiple(g))
}

func TestCapabilityOverrides(t *testing.T) {
	db := makeTestDB(t)
	defer db.Close()

	q, err := NewQueryGenerator(db, nil, "")
	assert.NoError(t, err)
	assert.False(t, IsFileBased(q))
	assert.False(t, ContainsTestData(q))
	assert.False(t, ReturnsMultiple(q))

	multi, err := NewQueryGenerator(db, []string{"msms", "ri"}, "")
	assert.NoError(t, err)
	assert.True(t, ReturnsMultiple(multi))

	s, err := NewSimilarityGenerator(db, 1, 0, 1)
	assert.NoError(t, err)
	assert.False(t, IsFileBased(s))
	assert.False(t, ContainsTestData(s))
	assert.True(t, ReturnsMultiple(s))
}
