package encoder

import (
	"log"

	"github.com/specml/specml/spec-go/machine/spectrum"
	"github.com/specml/specml/spec-golib/errors"
	"github.com/specml/specml/spec-golib/imagecache"
)

// EncodeBatch renders each spectrum and persists it as a PNG named by the
// spectrum's content hash under dir, creating the directory if absent.
// Identical spectra re-encode to the same file name, so re-runs are
// idempotent and already-present images are skipped.
func (e *Encoder) EncodeBatch(specs []spectrum.Spectrum, dir string) error {
	store, err := imagecache.Open(dir)
	if err != nil {
		return errors.Wrapf(err, "error opening image store at %s", dir)
	}

	var skipped int
	for _, spec := range specs {
		key := spec.Hash()
		if store.Exists(key) {
			skipped++
			continue
		}
		img, err := e.Encode(spec)
		if err != nil {
			return errors.Wrapf(err, "error encoding spectrum %s", key)
		}
		if err := store.Put(key, img); err != nil {
			return errors.Wrapf(err, "error writing image %s", key)
		}
	}
	log.Printf("encoded %d spectra to %s (%d already present)", len(specs)-skipped, dir, skipped)
	return nil
}
