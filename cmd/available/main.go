// Command available lists every theoretical channel pair in the band plan
// that no current coordination occupies, in either orientation.
//
// Usage:
//
//	go run ./cmd/available -extract DataBaseExtract.zip
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pnwcoord/repeater-qa/internal/adapter/extract"
	"github.com/pnwcoord/repeater-qa/internal/bandplan"
	"github.com/pnwcoord/repeater-qa/internal/domain"
)

func main() {
	extractPath := flag.String("extract", "", "path to a database extract (.zip or .csv)")
	flag.Parse()

	if *extractPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*extractPath); code != 0 {
		os.Exit(code)
	}
}

func run(extractPath string) int {
	channels, err := extract.Load(extractPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load extract: %v\n", err)
		return 1
	}

	enumerator := bandplan.NewEnumerator(bandplan.DefaultRules())
	available := enumerator.Available(channels)

	for _, ch := range available {
		fmt.Println(formatPair(ch))
	}
	fmt.Printf("\n%d pairs available (%d coordinated)\n", len(available), len(channels))
	return 0
}

func formatPair(ch domain.Channel) string {
	return fmt.Sprintf("%s / %s  |%s kHz|",
		ch.Output.String(), ch.Input.String(), ch.Bandwidth.String())
}
