// Command crossref looks up each coordinated channel in an external
// repeater directory dump and reports whether it was found, has nearby
// same-output candidates, or is absent.
//
// Usage:
//
//	go run ./cmd/crossref -extract DataBaseExtract.zip -directory dump.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pnwcoord/repeater-qa/internal/adapter/directory"
	"github.com/pnwcoord/repeater-qa/internal/adapter/extract"
	"github.com/pnwcoord/repeater-qa/internal/crossref"
)

func main() {
	extractPath := flag.String("extract", "", "path to a database extract (.zip or .csv)")
	directoryPath := flag.String("directory", "", "path to a directory dump (.json)")
	radius := flag.Float64("radius", crossref.DefaultRadiusKM, "candidate search radius in km")
	flag.Parse()

	if *extractPath == "" || *directoryPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*extractPath, *directoryPath, *radius); code != 0 {
		os.Exit(code)
	}
}

func run(extractPath, directoryPath string, radius float64) int {
	channels, err := extract.Load(extractPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load extract: %v\n", err)
		return 1
	}
	entries, err := directory.Load(directoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load directory: %v\n", err)
		return 1
	}

	matcher := crossref.NewMatcher(radius)
	results := matcher.MatchAll(channels, entries)

	counts := map[crossref.Status]int{}
	for _, r := range results {
		counts[r.Status]++
		fmt.Printf("%-10s %s\n", r.Status, r.Channel)
		for _, c := range r.Candidates {
			fmt.Printf("           ~ %s (%.1f km)\n", c.Channel, c.DistanceKM)
		}
	}

	fmt.Printf("\n%d channels: %d found, %d with candidates, %d not found\n",
		len(results), counts[crossref.StatusFound],
		counts[crossref.StatusCandidates], counts[crossref.StatusNotFound])
	return 0
}
