// Package labels turns heterogeneous dataset sources (image directories, CSV
// manifests, database queries, similarity-pair sampling) into uniform labeled
// train/test tables for model training and prediction.
package labels

// Record is one labeled training or testing example.
type Record struct {
	// ID identifies the example: a file path for file-based generators, or a
	// single feature value otherwise.
	ID string
	// Fields is set instead of ID when the generator returns multiple feature
	// columns; downstream consumers flatten it.
	Fields []string
	Class  string
	// Training marks which partition the record was emitted for.
	Training bool
}

// Generator enumerates labeled records from a backing source.
// GenerateLabels emits one record per discovered example, in discovery order,
// for the requested partition. Returning an error from emit aborts the scan.
type Generator interface {
	Name() string
	GenerateLabels(input string, training bool, emit func(Record) error) error
}

// Optional capabilities. Generators opt out of the defaults by implementing
// the matching method; everything else gets the default via the free
// functions below.
type fileBased interface {
	IsFileBased() bool
}

type testDataProvider interface {
	ContainsTestData() bool
}

type multiField interface {
	ReturnsMultiple() bool
}

// IsFileBased reports whether every emitted ID must resolve to an existing
// file. Defaults to true.
func IsFileBased(g Generator) bool {
	if fb, ok := g.(fileBased); ok {
		return fb.IsFileBased()
	}
	return true
}

// ContainsTestData reports whether the source supplies its own held-out test
// partition. Defaults to true. When false the caller splits the train table
// itself (see Table.Split).
func ContainsTestData(g Generator) bool {
	if td, ok := g.(testDataProvider); ok {
		return td.ContainsTestData()
	}
	return true
}

// ReturnsMultiple reports whether records carry a composite identifier in
// Fields rather than a scalar ID. Defaults to false.
func ReturnsMultiple(g Generator) bool {
	if mf, ok := g.(multiField); ok {
		return mf.ReturnsMultiple()
	}
	return false
}
