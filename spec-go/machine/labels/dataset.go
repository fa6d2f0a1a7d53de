package labels

import (
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/specml/specml/spec-golib/errors"
)

// Table is an ordered collection of labeled records, rebuilt in full on
// every generation call.
type Table []Record

// GenerateDataset drives the generator through a train pass and, when the
// source supplies its own held-out partition, a test pass. The two passes are
// independent; insertion order reflects discovery order from the source.
// When the generator is file-based, any emitted ID that does not resolve to
// an existing file aborts the whole call: no partial dataset is returned.
func GenerateDataset(g Generator, input string) (train, test Table, err error) {
	train, err = collect(g, input, true)
	if err != nil {
		return nil, nil, err
	}
	if ContainsTestData(g) {
		test, err = collect(g, input, false)
		if err != nil {
			return nil, nil, err
		}
	}
	return train, test, nil
}

func collect(g Generator, input string, training bool) (Table, error) {
	var t Table
	checkFiles := IsFileBased(g)
	err := g.GenerateLabels(input, training, func(r Record) error {
		if checkFiles {
			if _, err := os.Stat(r.ID); err != nil {
				return errors.Errorf("please ensure all files exist, missing %s", r.ID)
			}
		}
		r.Training = training
		t = append(t, r)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error generating %s labels with %s", partition(training), g.Name())
	}
	return t, nil
}

func partition(training bool) string {
	if training {
		return "train"
	}
	return "test"
}

// Split deterministically shuffles the table and holds out the given
// fraction as a test partition. It is meant for generators that carry no
// test data of their own.
func (t Table) Split(testFraction float64, seed int64) (train, test Table) {
	shuffled := append(Table(nil), t...)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	n := int(float64(len(shuffled)) * testFraction)
	test = append(Table(nil), shuffled[:n]...)
	train = append(Table(nil), shuffled[n:]...)
	for i := range test {
		test[i].Training = false
	}
	for i := range train {
		train[i].Training = true
	}
	return train, test
}

type csvRecord struct {
	File     string `csv:"file"`
	Class    string `csv:"class"`
	Training bool   `csv:"training"`
}

// WriteCSV writes the table as UTF-8 CSV with header file,class,training and
// no index column. Composite identifiers are joined with "|".
func (t Table) WriteCSV(w io.Writer) error {
	rows := make([]csvRecord, 0, len(t))
	for _, r := range t {
		id := r.ID
		if len(r.Fields) > 0 {
			id = strings.Join(r.Fields, "|")
		}
		rows = append(rows, csvRecord{File: id, Class: r.Class, Training: r.Training})
	}
	return gocsv.Marshal(&rows, w)
}

// WriteDatasetCSV generates the dataset and writes the requested partition
// to a CSV file.
func WriteDatasetCSV(g Generator, input, path string, training bool) (err error) {
	train, test, err := GenerateDataset(g, input)
	if err != nil {
		return err
	}
	t := train
	if !training {
		if test == nil {
			return errors.Errorf("%s does not provide test data", g.Name())
		}
		t = test
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", path)
	}
	defer errors.Defer(&err, f.Close)
	return t.WriteCSV(f)
}
