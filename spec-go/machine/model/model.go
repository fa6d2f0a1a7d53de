// Package model is the glue between the dataset pipeline and the external
// CNN runtime. The trained model artifact is an opaque blob produced and
// consumed by that runtime; this package only routes paths and rasters.
package model

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/specml/specml/spec-go/machine/encoder"
	"github.com/specml/specml/spec-go/machine/spectrum"
	"github.com/specml/specml/spec-golib/errors"
)

// File returns the path of the persisted model artifact for the given model
// name under dir. The file itself is never parsed here.
func File(dir, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_model.h5", name))
}

// Classifier predicts a category from an encoded spectrum raster. It is
// implemented by the external deep-learning runtime.
type Classifier interface {
	Predict(img image.Image) (string, error)
}

// PredictSpectrum rasterizes one spectrum on demand and hands it to the
// classifier.
func PredictSpectrum(c Classifier, enc *encoder.Encoder, spec spectrum.Spectrum) (string, error) {
	img, err := enc.Encode(spec)
	if err != nil {
		return "", errors.Wrapf(err, "error encoding spectrum for prediction")
	}
	return c.Predict(img)
}
