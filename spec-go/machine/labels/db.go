package labels

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/specml/specml/spec-golib/errors"
)

// DefaultQuery joins spectra records with their classification values for a
// dataset name. The single %s placeholder is filled with the base name of
// the generator input.
const DefaultQuery = "select a.*, b.value as class from mzmlmsmsspectrarecord a, " +
	"mzmzmsmsspectraclassificationrecord b where a.id = b.spectra_id and b.category = '%s'"

// QueryGenerator produces labels from a relational store via a parameterized
// SQL template. The query must select a class column; the configured feature
// columns become the record identifier (a tuple when more than one).
// The store is treated as read-only; the connection is injected by the
// caller rather than taken from process-wide state.
type QueryGenerator struct {
	db     *sqlx.DB
	fields []string
	query  string
}

// NewQueryGenerator builds a generator over the given connection. fields
// defaults to [msms]; query defaults to DefaultQuery and must contain a
// class column when supplied.
func NewQueryGenerator(db *sqlx.DB, fields []string, query string) (*QueryGenerator, error) {
	if db == nil {
		return nil, errors.Errorf("a database connection is required")
	}
	if len(fields) == 0 {
		fields = []string{"msms"}
	}
	if query == "" {
		query = DefaultQuery
	} else if !strings.Contains(query, "class") {
		return nil, errors.Errorf("please ensure that a class field is in the query")
	}
	return &QueryGenerator{db: db, fields: fields, query: query}, nil
}

// Name implements Generator
func (g *QueryGenerator) Name() string {
	return "QueryGenerator"
}

// Fields returns the feature columns emitted under the record identifier.
func (g *QueryGenerator) Fields() []string {
	return g.fields
}

// GenerateLabels implements Generator. input is the dataset name, e.g.
// "clean_dirty"; only its last path segment is used.
func (g *QueryGenerator) GenerateLabels(input string, training bool, emit func(Record) error) error {
	name := filepath.Base(input)
	rows, err := g.db.Queryx(fmt.Sprintf(g.query, name))
	if err != nil {
		return errors.Wrapf(err, "error querying dataset %s", name)
	}
	defer rows.Close()

	for rows.Next() {
		m := map[string]interface{}{}
		if err := rows.MapScan(m); err != nil {
			return errors.Wrapf(err, "error scanning row for dataset %s", name)
		}
		class, ok := m["class"]
		if !ok {
			return errors.Errorf("please ensure that a class field is in the query")
		}

		values := make([]string, 0, len(g.fields))
		for _, f := range g.fields {
			v, ok := m[f]
			if !ok {
				return errors.Errorf("query did not return field %s", f)
			}
			values = append(values, columnString(v))
		}

		r := Record{Class: columnString(class), Training: training}
		if len(values) > 1 {
			r.Fields = values
		} else {
			r.ID = values[0]
		}
		if err := emit(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// IsFileBased implements the optional capability: identifiers are raw
// feature values, not paths.
func (g *QueryGenerator) IsFileBased() bool {
	return false
}

// ContainsTestData implements the optional capability: the caller holds out
// its own split (see Table.Split).
func (g *QueryGenerator) ContainsTestData() bool {
	return false
}

// ReturnsMultiple implements the optional capability
func (g *QueryGenerator) ReturnsMultiple() bool {
	return len(g.fields) > 1
}

// columnString renders a scanned column value for the label table. Database
// drivers hand back text as []byte and numbers as int64/float64.
func columnString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
