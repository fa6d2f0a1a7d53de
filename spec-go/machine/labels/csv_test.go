package labels

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeCSVLayout writes a train.csv/test.csv manifest plus the image files the
// rows reference (by name relative to the dataset root).
func makeCSVLayout(t *testing.T, trainCSV, testCSV string, files ...string) string {
	dir, err := ioutil.TempDir("", "labels")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	for _, f := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, f), []byte("png"), 0666))
	}
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "train.csv"), []byte(trainCSV), 0666))
	if testCSV != "" {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "test.csv"), []byte(testCSV), 0666))
	}
	return dir
}

func TestCSVGenerator(t *testing.T) {
	dir := makeCSVLayout(t,
		"file,class\na.png,clean\nb.png,dirty\n",
		"file,class\nc.png,clean\n",
		"a.png", "b.png", "c.png")

	train, test, err := GenerateDataset(NewCSVGenerator(), dir)
	require.NoError(t, err)

	require.Len(t, train, 2)
	assert.Equal(t, filepath.Join(dir, "a.png"), train[0].ID)
	assert.Equal(t, "clean", train[0].Class)
	assert.Equal(t, filepath.Join(dir, "b.png"), train[1].ID)
	assert.Equal(t, "dirty", train[1].Class)

	require.Len(t, test, 1)
	assert.Equal(t, filepath.Join(dir, "c.png"), test[0].ID)
}

func TestCSVGeneratorReversedHeader(t *testing.T) {
	// column roles are assigned by name, not position
	dir := makeCSVLayout(t,
		"class,file\nclean,a.png\n",
		"class,file\ndirty,b.png\n",
		"a.png", "b.png")

	train, test, err := GenerateDataset(NewCSVGenerator(), dir)
	require.NoError(t, err)
	require.Len(t, train, 1)
	assert.Equal(t, filepath.Join(dir, "a.png"), train[0].ID)
	assert.Equal(t, "clean", train[0].Class)
	require.Len(t, test, 1)
	assert.Equal(t, "dirty", test[0].Class)
}

func TestCSVGeneratorUnrecognizedHeader(t *testing.T) {
	dir := makeCSVLayout(t, "label,path\nclean,a.png\n", "", "a.png")

	g := NewCSVGenerator()
	var emitted int
	err := g.GenerateLabels(dir, true, func(Record) error {
		emitted++
		return nil
	})
	require.Error(t, err)
	assert.Zero(t, emitted, "no rows should be emitted before the header check fails")
}

func TestCSVGeneratorCustomFields(t *testing.T) {
	dir := makeCSVLayout(t, "path,label\na.png,clean\n", "", "a.png")

	g := &CSVGenerator{FieldID: "path", FieldClass: "label"}
	var records []Record
	require.NoError(t, g.GenerateLabels(dir, true, func(r Record) error {
		records = append(records, r)
		return nil
	}))
	require.Len(t, records, 1)
	assert.Equal(t, "clean", records[0].Class)
}

func TestCSVGeneratorMissingFile(t *testing.T) {
	dir := makeCSVLayout(t, "file,class\nmissing.png,clean\n", "")

	_, _, err := GenerateDataset(NewCSVGenerator(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
}

func TestCSVGeneratorAbsolutePaths(t *testing.T) {
	dir := makeCSVLayout(t, "", "")
	abs := filepath.Join(dir, "elsewhere.png")
	require.NoError(t, ioutil.WriteFile(abs, []byte("png"), 0666))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "train.csv"),
		[]byte("file,class\n"+abs+",clean\n"), 0666))

	g := NewCSVGenerator()
	var records []Record
	require.NoError(t, g.GenerateLabels(dir, true, func(r Record) error {
		records = append(records, r)
		return nil
	}))
	require.Len(t, records, 1)
	assert.Equal(t, abs, records[0].ID)
}

func TestCSVGeneratorMissingInput(t *testing.T) {
	_, _, err := GenerateDataset(NewCSVGenerator(), "/nonexistent/dataset")
	require.Error(t, err)
}

// Writing a dataset and re-reading it through the CSV generator reproduces
// the same (id, class) pairs in the same order; the extra training column is
// ignored by the reader.
func TestCSVRoundTrip(t *testing.T) {
	dir := makeImageLayout(t)
	train, _, err := GenerateDataset(NewDirectoryGenerator(), dir)
	require.NoError(t, err)

	out, err := ioutil.TempDir("", "roundtrip")
	require.NoError(t, err)
	defer os.RemoveAll(out)
	require.NoError(t, WriteDatasetCSV(NewDirectoryGenerator(), dir, filepath.Join(out, "train.csv"), true))

	g := NewCSVGenerator()
	var back Table
	require.NoError(t, g.GenerateLabels(out, true, func(r Record) error {
		back = append(back, r)
		return nil
	}))

	require.Len(t, back, len(train))
	for i := range train {
		assert.Equal(t, train[i].ID, back[i].ID)
		assert.Equal(t, train[i].Class, back[i].Class)
	}
}
