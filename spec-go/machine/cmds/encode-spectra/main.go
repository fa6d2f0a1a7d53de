package main

import (
	"bufio"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/jmoiron/sqlx"

	"github.com/specml/specml/spec-go/machine/encoder"
	"github.com/specml/specml/spec-go/machine/labels"
	"github.com/specml/specml/spec-go/machine/spectrum"

	// database drivers
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func noErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		Input        string  `help:"file with one spectrum per line"`
		Dataset      string  `help:"dataset name to pull spectra from the database instead"`
		Driver       string  `help:"database driver"`
		URI          string  `help:"database URI"`
		Out          string  `arg:"required" help:"directory for the content-addressed images"`
		Width        int     `help:"raster width"`
		Height       int     `help:"raster height"`
		MinMZ        float64 `help:"lower nominal mass bound"`
		MaxMZ        float64 `help:"upper nominal mass bound"`
		IntensityMax float64 `help:"intensity bar bound"`
		PlotAxis     bool    `help:"render axis decorations"`
	}{
		Driver:       "sqlite3",
		Width:        encoder.DefaultOptions.Width,
		Height:       encoder.DefaultOptions.Height,
		MinMZ:        encoder.DefaultOptions.MinMZ,
		MaxMZ:        encoder.DefaultOptions.MaxMZ,
		IntensityMax: encoder.DefaultOptions.IntensityMax,
	}
	arg.MustParse(&args)

	enc, err := encoder.NewEncoder(encoder.Options{
		Width:        args.Width,
		Height:       args.Height,
		MinMZ:        args.MinMZ,
		MaxMZ:        args.MaxMZ,
		IntensityMax: args.IntensityMax,
		PlotAxis:     args.PlotAxis,
	})
	noErr(err)

	var raw []string
	switch {
	case args.Input != "":
		raw, err = readLines(args.Input)
		noErr(err)
	case args.Dataset != "":
		db, err := sqlx.Connect(args.Driver, args.URI)
		noErr(err)
		defer db.Close()
		g, err := labels.NewQueryGenerator(db, nil, "")
		noErr(err)
		noErr(g.GenerateLabels(args.Dataset, true, func(r labels.Record) error {
			raw = append(raw, r.ID)
			return nil
		}))
	default:
		log.Fatal("either --input or --dataset is required")
	}

	specs := make([]spectrum.Spectrum, 0, len(raw))
	for _, line := range raw {
		spec, err := spectrum.Parse(line)
		noErr(err)
		specs = append(specs, spec)
	}

	noErr(enc.EncodeBatch(specs, args.Out))
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
