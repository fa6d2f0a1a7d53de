package labels

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/specml/specml/spec-golib/errors"
)

const similarityQuery = "select b.spectra_id, a.msms, a.ri, a.precursor, a.precursor_intensity, " +
	"a.base_peak, a.base_peak_intensity, a.ion_count, b.value as name " +
	"from mzmlmsmsspectrarecord a, mzmzmsmsspectraclassificationrecord b " +
	"where a.id = b.spectra_id and b.category = 'name'"

// SimilarityGenerator produces a dataset for similarity models. For every
// base spectrum it samples, per repetition, one other spectrum of the same
// compound (a positive pair, class true) and one of a different compound (a
// negative pair, class false). Base rows whose compound pool is too small to
// sample from are skipped and processing continues; this is recoverable, not
// fatal. Sampling is seeded so runs are reproducible.
type SimilarityGenerator struct {
	db       *sqlx.DB
	resample int
	limit    int
	seed     int64
}

// NewSimilarityGenerator builds a generator over the given connection.
// resample values below 1 mean one repetition per base row; a limit above 0
// bounds the base query.
func NewSimilarityGenerator(db *sqlx.DB, resample, limit int, seed int64) (*SimilarityGenerator, error) {
	if db == nil {
		return nil, errors.Errorf("a database connection is required")
	}
	if resample < 1 {
		resample = 1
	}
	return &SimilarityGenerator{db: db, resample: resample, limit: limit, seed: seed}, nil
}

// Name implements Generator
func (g *SimilarityGenerator) Name() string {
	return "SimilarityGenerator"
}

type similarityRow struct {
	SpectraID          int64   `db:"spectra_id"`
	MSMS               string  `db:"msms"`
	RI                 float64 `db:"ri"`
	Precursor          float64 `db:"precursor"`
	PrecursorIntensity float64 `db:"precursor_intensity"`
	BasePeak           float64 `db:"base_peak"`
	BasePeakIntensity  float64 `db:"base_peak_intensity"`
	IonCount           int64   `db:"ion_count"`
	Name               string  `db:"name"`
}

// fields flattens the row's feature columns in select order, minus the id.
func (r similarityRow) fields() []string {
	return []string{
		r.MSMS,
		strconv.FormatFloat(r.RI, 'g', -1, 64),
		strconv.FormatFloat(r.Precursor, 'g', -1, 64),
		strconv.FormatFloat(r.PrecursorIntensity, 'g', -1, 64),
		strconv.FormatFloat(r.BasePeak, 'g', -1, 64),
		strconv.FormatFloat(r.BasePeakIntensity, 'g', -1, 64),
		strconv.FormatInt(r.IonCount, 10),
		r.Name,
	}
}

// GenerateLabels implements Generator. input is unused beyond selecting the
// spectra pool; the pool is keyed by compound name.
func (g *SimilarityGenerator) GenerateLabels(input string, training bool, emit func(Record) error) error {
	query := similarityQuery
	if g.limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, g.limit)
	}

	var pool []similarityRow
	if err := g.db.Select(&pool, query); err != nil {
		return errors.Wrapf(err, "error loading spectra pool")
	}

	byName := make(map[string][]int)
	for i, row := range pool {
		byName[row.Name] = append(byName[row.Name], i)
	}

	rnd := rand.New(rand.NewSource(g.seed))
	var skipped int
	for _, base := range pool {
		for rep := 0; rep < g.resample; rep++ {
			same, ok := g.sampleSame(rnd, pool, byName, base)
			if !ok {
				skipped++
				break
			}
			diff, ok := g.sampleDifferent(rnd, pool, base)
			if !ok {
				skipped++
				break
			}

			pair := func(other similarityRow, class bool) Record {
				return Record{
					Fields:   append(base.fields(), other.fields()...),
					Class:    strconv.FormatBool(class),
					Training: training,
				}
			}
			if err := emit(pair(same, true)); err != nil {
				return err
			}
			if err := emit(pair(diff, false)); err != nil {
				return err
			}
		}
	}
	if skipped > 0 {
		log.Printf("skipped %d base spectra without sampling candidates", skipped)
	}
	return nil
}

// sampleSame picks a random spectrum sharing the base compound name but with
// a different id.
func (g *SimilarityGenerator) sampleSame(rnd *rand.Rand, pool []similarityRow, byName map[string][]int, base similarityRow) (similarityRow, bool) {
	var candidates []int
	for _, i := range byName[base.Name] {
		if pool[i].SpectraID != base.SpectraID {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return similarityRow{}, false
	}
	return pool[candidates[rnd.Intn(len(candidates))]], true
}

// sampleDifferent picks a random spectrum of any other compound.
func (g *SimilarityGenerator) sampleDifferent(rnd *rand.Rand, pool []similarityRow, base similarityRow) (similarityRow, bool) {
	var candidates []int
	for i, row := range pool {
		if row.Name != base.Name {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return similarityRow{}, false
	}
	return pool[candidates[rnd.Intn(len(candidates))]], true
}

// IsFileBased implements the optional capability
func (g *SimilarityGenerator) IsFileBased() bool {
	return false
}

// ContainsTestData implements the optional capability
func (g *SimilarityGenerator) ContainsTestData() bool {
	return false
}

// ReturnsMultiple implements the optional capability
func (g *SimilarityGenerator) ReturnsMultiple() bool {
	return true
}
