package labels

import (
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/mattn/go-zglob"

	"github.com/specml/specml/spec-golib/errors"
)

// DirectoryGenerator produces labels from images laid out as
//
//	<input>/train/<category>/**
//	<input>/test/<category>/**
//
// where the immediate subdirectory name is the category label. Both the
// category listing and the glob matches are sorted lexicographically so runs
// are reproducible regardless of filesystem listing order.
type DirectoryGenerator struct {
	// Pattern matches image files within a category directory; defaults to
	// "*.png".
	Pattern string
}

// NewDirectoryGenerator returns a generator over the default PNG layout.
func NewDirectoryGenerator() *DirectoryGenerator {
	return &DirectoryGenerator{Pattern: "*.png"}
}

// Name implements Generator
func (g *DirectoryGenerator) Name() string {
	return "DirectoryGenerator"
}

// GenerateLabels implements Generator
func (g *DirectoryGenerator) GenerateLabels(input string, training bool, emit func(Record) error) error {
	dir := filepath.Join(input, partition(training))
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "error reading dataset directory %s", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		matches, err := zglob.Glob(filepath.Join(dir, category, "**", g.Pattern))
		if err != nil {
			return errors.Wrapf(err, "error globbing %s under %s", g.Pattern, category)
		}
		sort.Strings(matches)
		for _, file := range matches {
			if err := emit(Record{ID: file, Class: category, Training: training}); err != nil {
				return err
			}
		}
	}
	return nil
}
