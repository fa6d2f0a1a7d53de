package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	arg "github.com/alexflint/go-arg"
	"github.com/jmoiron/sqlx"

	"github.com/specml/specml/spec-go/machine/labels"

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
		Input     string   `arg:"required" help:"dataset root directory, or dataset name for database generators"`
		Out       string   `arg:"required" help:"directory to write train.csv and test.csv to"`
		Generator string   `help:"one of directory, csv, query, similarity"`
		Driver    string   `help:"database driver for query/similarity generators"`
		URI       string   `help:"database URI for query/similarity generators"`
		Fields    []string `help:"feature columns for the query generator"`
		Query     string   `help:"custom SQL template for the query generator"`
		Resample  int      `help:"pair repetitions per base spectrum"`
		Limit     int      `help:"bound on the similarity base query"`
		Seed      int64    `help:"seed for sampling and splitting"`
		TestSplit float64  `help:"held-out fraction for sources without test data"`
	}{
		Generator: "directory",
		Driver:    "sqlite3",
		Resample:  1,
		Seed:      42,
		TestSplit: 0.2,
	}
	arg.MustParse(&args)

	var g labels.Generator
	switch args.Generator {
	case "directory":
		g = labels.NewDirectoryGenerator()
	case "csv":
		g = labels.NewCSVGenerator()
	case "query", "similarity":
		db, err := sqlx.Connect(args.Driver, args.URI)
		noErr(err)
		defer db.Close()
		if args.Generator == "query" {
			g, err = labels.NewQueryGenerator(db, args.Fields, args.Query)
		} else {
			g, err = labels.NewSimilarityGenerator(db, args.Resample, args.Limit, args.Seed)
		}
		noErr(err)
	default:
		log.Fatal(fmt.Errorf("unknown generator %s", args.Generator))
	}

	train, test, err := labels.GenerateDataset(g, args.Input)
	noErr(err)
	if test == nil {
		train, test = train.Split(args.TestSplit, args.Seed)
	}

	noErr(os.MkdirAll(args.Out, 0777))
	for _, p := range []struct {
		name  string
		table labels.Table
	}{
		{"train.csv", train},
		{"test.csv", test},
	} {
		f, err := os.Create(filepath.Join(args.Out, p.name))
		noErr(err)
		noErr(p.table.WriteCSV(f))
		noErr(f.Close())
		log.Printf("wrote %d records to %s", len(p.table), filepath.Join(args.Out, p.name))
	}
}
