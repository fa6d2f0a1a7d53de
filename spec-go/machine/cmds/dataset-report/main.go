package main

import (
	"log"
	"os"
	"sort"

	arg "github.com/alexflint/go-arg"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	chart "github.com/wcharczuk/go-chart"
)

type labeledRow struct {
	File     string `csv:"file"`
	Class    string `csv:"class"`
	Training bool   `csv:"training"`
}

func noErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		Input string `arg:"required" help:"labeled dataset CSV"`
		Out   string `help:"class distribution chart PNG"`
	}{
		Out: "classes.png",
	}
	arg.MustParse(&args)

	f, err := os.Open(args.Input)
	noErr(err)
	defer f.Close()

	var rows []labeledRow
	noErr(gocsv.Unmarshal(f, &rows))
	if len(rows) == 0 {
		log.Fatalf("no records in %s", args.Input)
	}

	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Class]++
	}
	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	sizes := make(stats.Float64Data, 0, len(classes))
	for _, class := range classes {
		log.Printf("%s: %d records (%.1f%%)", class, counts[class],
			100*float64(counts[class])/float64(len(rows)))
		sizes = append(sizes, float64(counts[class]))
	}
	mean, err := stats.Mean(sizes)
	noErr(err)
	stddev, err := stats.StandardDeviation(sizes)
	noErr(err)
	log.Printf("%d records across %d classes, %.1f +/- %.1f per class",
		len(rows), len(classes), mean, stddev)

	bars := make([]chart.Value, 0, len(classes))
	for _, class := range classes {
		bars = append(bars, chart.Value{Label: class, Value: float64(counts[class])})
	}

	graph := chart.BarChart{
		Title:      "class distribution",
		TitleStyle: chart.StyleShow(),
		Height:     512,
		BarWidth:   60,
		XAxis:      chart.StyleShow(),
		YAxis: chart.YAxis{
			Style: chart.StyleShow(),
		},
		Bars: bars,
	}

	out, err := os.Create(args.Out)
	noErr(err)
	defer out.Close()
	noErr(graph.Render(chart.PNG, out))
	log.Printf("wrote %s", args.Out)
}
