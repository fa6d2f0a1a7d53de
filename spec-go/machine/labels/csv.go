package labels

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/specml/specml/spec-golib/errors"
)

// CSVGenerator produces labels from <input>/train.csv and <input>/test.csv.
// Columns are located by name, not position, so a reversed header works; a
// header missing either recognized column name is a fatal configuration
// error. Extra columns (such as the training flag written by WriteCSV) are
// ignored, which keeps the write/read round trip intact.
type CSVGenerator struct {
	FieldID    string
	FieldClass string
}

// NewCSVGenerator returns a generator with the default column names
// "file" and "class".
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{FieldID: "file", FieldClass: "class"}
}

// Name implements Generator
func (g *CSVGenerator) Name() string {
	return "CSVGenerator"
}

// GenerateLabels implements Generator
func (g *CSVGenerator) GenerateLabels(input string, training bool, emit func(Record) error) error {
	if _, err := os.Stat(input); err != nil {
		return errors.Errorf("please ensure that %s exists", input)
	}
	path := filepath.Join(input, partition(training)+".csv")
	f, err := os.Open(path)
	if err != nil {
		return errors.Errorf("please ensure that %s is a file", path)
	}
	defer f.Close()
	log.Printf("using: %s", path)

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return errors.Wrapf(err, "error reading header of %s", path)
	}
	idCol, classCol := -1, -1
	for i, name := range header {
		switch name {
		case g.FieldID:
			idCol = i
		case g.FieldClass:
			classCol = i
		}
	}
	if idCol < 0 || classCol < 0 {
		return errors.Errorf("please ensure that your column names are %s and %s instead of %v",
			g.FieldID, g.FieldClass, header)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "error reading %s", path)
		}
		if len(row) <= idCol || len(row) <= classCol {
			return errors.Errorf("row %v of %s is missing columns", row, path)
		}

		file, err := g.resolve(input, row[idCol])
		if err != nil {
			return err
		}
		if err := emit(Record{ID: file, Class: row[classCol], Training: training}); err != nil {
			return err
		}
	}
	return nil
}

// resolve tries the id column value as a literal path first, then joined
// under the input directory.
func (g *CSVGenerator) resolve(input, value string) (string, error) {
	if _, err := os.Stat(value); err == nil {
		return value, nil
	}
	joined := filepath.Join(input, value)
	if _, err := os.Stat(joined); err == nil {
		return joined, nil
	}
	return "", errors.Errorf("sorry we did not find the file: %s or %s", value, joined)
}
