// Package spectrum parses and canonicalizes mass-spectrometry spectra.
package spectrum

import (
	"strconv"
	"strings"

	"github.com/specml/specml/spec-golib/errors"
	"github.com/specml/specml/spec-golib/imagecache"
)

// Peak is one (mass-to-charge, intensity) pair.
type Peak struct {
	MZ        float64
	Intensity float64
}

// Spectrum is an ordered list of peaks.
type Spectrum struct {
	Peaks []Peak
}

// Parse parses the textual "mass:intensity mass:intensity ..." form.
// Every token must split into exactly two numeric fields.
func Parse(s string) (Spectrum, error) {
	var spec Spectrum
	for _, tok := range strings.Fields(s) {
		parts := strings.Split(tok, ":")
		if len(parts) != 2 {
			return Spectrum{}, errors.Errorf("malformed peak %q: expected mass:intensity", tok)
		}
		mz, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Spectrum{}, errors.Wrapf(err, "malformed mass in peak %q", tok)
		}
		intensity, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Spectrum{}, errors.Wrapf(err, "malformed intensity in peak %q", tok)
		}
		spec.Peaks = append(spec.Peaks, Peak{MZ: mz, Intensity: intensity})
	}
	if len(spec.Peaks) == 0 {
		return Spectrum{}, errors.Errorf("empty spectrum %q", s)
	}
	return spec, nil
}

// String returns the canonical serialized form. Formatting variants of the
// same peak list ("10.0:20" vs "10:20.00") serialize identically, which the
// content-addressed image cache relies on.
func (s Spectrum) String() string {
	toks := make([]string, 0, len(s.Peaks))
	for _, p := range s.Peaks {
		toks = append(toks,
			strconv.FormatFloat(p.MZ, 'g', -1, 64)+":"+strconv.FormatFloat(p.Intensity, 'g', -1, 64))
	}
	return strings.Join(toks, " ")
}

// Hash returns the content hash of the canonical form, used to name encoded
// image files.
func (s Spectrum) Hash() string {
	return imagecache.Key([]byte(s.String()))
}
