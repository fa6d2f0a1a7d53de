// Package encoder rasterizes spectra into fixed-size images for
// image-based classification.
package encoder

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/specml/specml/spec-go/machine/spectrum"
	"github.com/specml/specml/spec-golib/errors"
)

// Options configures the rasterization. All fields are fixed at construction.
type Options struct {
	Width, Height int
	// MinMZ and MaxMZ bound the nominal mass range, inclusive on both ends.
	MinMZ, MaxMZ float64
	// IntensityMax scales the peak-intensity bar in the bottom band.
	IntensityMax float64
	// PlotAxis renders axis decorations; it also determines channel depth.
	PlotAxis bool
}

// DefaultOptions mirror the reference encoder settings.
var DefaultOptions = Options{
	Width:        512,
	Height:       512,
	MinMZ:        0,
	MaxMZ:        2000,
	IntensityMax: 1000,
}

// Encoder deterministically maps a spectrum to a 2D intensity raster.
// It is stateless and safe for reuse across spectra.
type Encoder struct {
	opts Options

	// band heights at the fixed 16:16:1 ratio
	scatterH, stemH, barH int
}

// NewEncoder validates the options and returns an encoder.
func NewEncoder(opts Options) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.Errorf("invalid raster size %dx%d", opts.Width, opts.Height)
	}
	if opts.MaxMZ <= opts.MinMZ {
		return nil, errors.Errorf("invalid mz range [%v, %v]", opts.MinMZ, opts.MaxMZ)
	}
	if opts.IntensityMax <= 0 {
		return nil, errors.Errorf("invalid intensity bound %v", opts.IntensityMax)
	}
	scatterH := opts.Height * 16 / 33
	stemH := opts.Height * 16 / 33
	barH := opts.Height - scatterH - stemH
	if scatterH < 1 || stemH < 1 || barH < 1 {
		return nil, errors.Errorf("height %d too small for 16:16:1 bands", opts.Height)
	}
	return &Encoder{opts: opts, scatterH: scatterH, stemH: stemH, barH: barH}, nil
}

// Channels returns the channel depth of encoded rasters: 1 (grayscale)
// without axis decorations, 4 (RGBA) with them.
func (e *Encoder) Channels() int {
	if e.opts.PlotAxis {
		return 4
	}
	return 1
}

// bin is one mass group after collision merging and normalization.
type bin struct {
	mz        float64 // accurate mass, rounded to 5 decimal digits
	nominal   int     // integer part of the mass
	frac      float64 // fractional part, rounded to 4 decimal digits
	intensity float64 // summed intensity of the group
	norm      float64 // min-max normalized intensity across kept groups
}

// bins groups peaks by mass rounded to 5 decimal digits (summing intensities
// within a group), drops groups whose nominal mass falls outside the
// configured range, and min-max normalizes the remainder. When every kept
// group has the same intensity the normalized value is defined as 0.
func (e *Encoder) bins(spec spectrum.Spectrum) []bin {
	sums := make(map[int64]float64)
	for _, p := range spec.Peaks {
		key := int64(math.Round(p.MZ * 1e5))
		sums[key] += p.Intensity
	}

	keys := make([]int64, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var out []bin
	for _, k := range keys {
		mz := float64(k) / 1e5
		whole, frac := math.Modf(mz)
		b := bin{
			mz:        mz,
			nominal:   int(whole),
			frac:      math.Round(frac*1e4) / 1e4,
			intensity: sums[k],
		}
		if float64(b.nominal) < e.opts.MinMZ || float64(b.nominal) > e.opts.MaxMZ {
			continue
		}
		out = append(out, b)
	}

	if len(out) == 0 {
		return out
	}
	min, max := out[0].intensity, out[0].intensity
	for _, b := range out {
		if b.intensity < min {
			min = b.intensity
		}
		if b.intensity > max {
			max = b.intensity
		}
	}
	for i := range out {
		if max > min {
			out[i].norm = (out[i].intensity - min) / (max - min)
		}
		// max == min leaves norm at 0
	}
	return out
}

// Encode renders the spectrum as three stacked bands: a scatter of
// (nominal mass, fractional mass) shaded by normalized intensity, a stem plot
// of (accurate mass, normalized intensity), and a bar of peak intensity
// against the configured bound. Identical spectra render bit-identically.
func (e *Encoder) Encode(spec spectrum.Spectrum) (image.Image, error) {
	bins := e.bins(spec)
	if e.opts.PlotAxis {
		return e.renderRGBA(bins), nil
	}
	return e.renderGray(bins), nil
}

func (e *Encoder) xpos(mz float64) int {
	f := (mz - e.opts.MinMZ) / (e.opts.MaxMZ - e.opts.MinMZ)
	x := int(f * float64(e.opts.Width-1))
	if x < 0 {
		x = 0
	}
	if x > e.opts.Width-1 {
		x = e.opts.Width - 1
	}
	return x
}

func (e *Encoder) maxIntensity(bins []bin) float64 {
	var max float64
	for _, b := range bins {
		if b.intensity > max {
			max = b.intensity
		}
	}
	return max
}

// renderGray draws white-on-black into a single-channel raster.
func (e *Encoder) renderGray(bins []bin) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, e.opts.Width, e.opts.Height))
	e.render(bins, func(x, y int, shade uint8) {
		img.SetGray(x, y, color.Gray{Y: shade})
	})
	return img
}

// renderRGBA draws black-on-white with a frame around each band.
func (e *Encoder) renderRGBA(bins []bin) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, e.opts.Width, e.opts.Height))
	for y := 0; y < e.opts.Height; y++ {
		for x := 0; x < e.opts.Width; x++ {
			img.Set(x, y, color.White)
		}
	}
	e.render(bins, func(x, y int, shade uint8) {
		v := 255 - shade
		img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
	})

	frame := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for _, band := range [][2]int{
		{0, e.scatterH},
		{e.scatterH, e.scatterH + e.stemH},
		{e.scatterH + e.stemH, e.opts.Height},
	} {
		top, bottom := band[0], band[1]-1
		for x := 0; x < e.opts.Width; x++ {
			img.Set(x, top, frame)
			img.Set(x, bottom, frame)
		}
		for y := top; y <= bottom; y++ {
			img.Set(0, y, frame)
			img.Set(e.opts.Width-1, y, frame)
		}
	}
	return img
}

// render draws the three bands through a setter so both channel depths share
// the same geometry.
func (e *Encoder) render(bins []bin, set func(x, y int, shade uint8)) {
	// band 1: scatter of (nominal, fraction), shaded by normalized intensity
	for _, b := range bins {
		x := e.xpos(float64(b.nominal))
		y := e.scatterH - 1 - int(b.frac*float64(e.scatterH-1))
		shade := uint8(b.norm * 255)
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				px, py := x+dx, y+dy
				if px < e.opts.Width && py < e.scatterH {
					set(px, py, shade)
				}
			}
		}
	}

	// band 2: stems of (accurate mass, normalized intensity)
	stemBottom := e.scatterH + e.stemH - 1
	for _, b := range bins {
		x := e.xpos(b.mz)
		h := int(b.norm * float64(e.stemH-1))
		for y := stemBottom - h; y <= stemBottom; y++ {
			set(x, y, 255)
		}
	}

	// band 3: peak intensity scaled against the configured bound
	if len(bins) > 0 {
		f := e.maxIntensity(bins) / e.opts.IntensityMax
		if f > 1 {
			f = 1
		}
		barEnd := int(f * float64(e.opts.Width-1))
		for y := e.scatterH + e.stemH; y < e.opts.Height; y++ {
			for x := 0; x <= barEnd; x++ {
				set(x, y, 255)
			}
		}
	}
}
