package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityGeneratorPairs(t *testing.T) {
	db := makeTestDB(t)
	defer db.Close()

	// two caffeine spectra plus one glucose spectrum
	insertSpectrum(t, db, 1, "100:10 200:20")
	insertSpectrum(t, db, 2, "100:11 200:21")
	insertSpectrum(t, db, 3, "300:30")
	classify(t, db, 1, "name", "caffeine")
	classify(t, db, 2, "name", "caffeine")
	classify(t, db, 3, "name", "glucose")

	g, err := NewSimilarityGenerator(db, 1, 0, 42)
	require.NoError(t, err)

	train, test, err := GenerateDataset(g, "unused")
	require.NoError(t, err)
	assert.Nil(t, test)

	// both caffeine rows pair up; the singleton glucose row is skipped but
	// does not abort the run
	require.Len(t, train, 4)
	classes := countClasses(train)
	assert.Equal(t, 2, classes["true"])
	assert.Equal(t, 2, classes["false"])

	for _, r := range train {
		assert.Empty(t, r.ID)
		// two flattened rows of 8 feature columns each
		require.Len(t, r.Fields, 16)
	}

	// positive pairs join two caffeine spectra, negatives mix compounds
	for _, r := range train {
		base, other := r.Fields[7], r.Fields[15]
		if r.Class == "true" {
			assert.Equal(t, base, other)
		} else {
			assert.NotEqual(t, base, other)
		}
	}
}

func TestSimilarityGeneratorResample(t *testing.T) {
	db := makeTestDB(t)
	defer db.Close()

	insertSpectrum(t, db, 1, "100:10")
	insertSpectrum(t, db, 2, "100:11")
	insertSpectrum(t, db, 3, "300:30")
	classify(t, db, 1, "name", "caffeine")
	classify(t, db, 2, "name", "caffeine")
	classify(t, db, 3, "name", "glucose")

	g, err := NewSimilarityGenerator(db, 3, 0, 42)
	require.NoError(t, err)

	train, _, err := GenerateDataset(g, "unused")
	require.NoError(t, err)
	// 2 base rows x 3 repetitions x 2 records each
	require.Len(t, train, 12)
}

func TestSimilarityGeneratorSingleCompoundCorpus(t *testing.T) {
	// with no foil compounds available nothing can be emitted, but the run
	// still succeeds
	db := makeTestDB(t)
	defer db.Close()

	insertSpectrum(t, db, 1, "100:10")
	insertSpectrum(t, db, 2, "100:11")
	classify(t, db, 1, "name", "caffeine")
	classify(t, db, 2, "name", "caffeine")

	g, err := NewSimilarityGenerator(db, 1, 0, 42)
	require.NoError(t, err)

	train, _, err := GenerateDataset(g, "unused")
	require.NoError(t, err)
	assert.Empty(t, train)
}

func TestSimilarityGeneratorLimit(t *testing.T) {
	db := makeTestDB(t)
	defer db.Close()

	insertSpectrum(t, db, 1, "100:10")
	insertSpectrum(t, db, 2, "100:11")
	insertSpectrum(t, db, 3, "300:30")
	classify(t, db, 1, "name", "caffeine")
	classify(t, db, 2, "name", "caffeine")
	classify(t, db, 3, "name", "glucose")

	// the limit cuts the pool down to the two caffeine rows, so no negative
	// pairs can be sampled
	g, err := NewSimilarityGenerator(db, 1, 2, 42)
	require.NoError(t, err)

	train, _, err := GenerateDataset(g, "unused")
	require.NoError(t, err)
	assert.Empty(t, train)
}

func TestSimilarityGeneratorDeterministic(t *testing.T) {
	db := makeTestDB(t)
	defer db.Close()

	for i := int64(1); i <= 6; i++ {
		insertSpectrum(t, db, i, "100:10")
	}
	classify(t, db, 1, "name", "caffeine")
	classify(t, db, 2, "name", "caffeine")
	classify(t, db, 3, "name", "caffeine")
	classify(t, db, 4, "name", "glucose")
	classify(t, db, 5, "name", "glucose")
	classify(t, db, 6, "name", "sucrose")

	g, err := NewSimilarityGenerator(db, 2, 0, 7)
	require.NoError(t, err)

	a, _, err := GenerateDataset(g, "unused")
	require.NoError(t, err)
	b, _, err := GenerateDataset(g, "unused")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
