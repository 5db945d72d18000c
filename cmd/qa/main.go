// Command qa checks every coordination in a database extract against the
// band plan and reports the records that do not fit.
//
// Usage:
//
//	go run ./cmd/qa -extract DataBaseExtract.zip
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pnwcoord/repeater-qa/internal/adapter/extract"
	"github.com/pnwcoord/repeater-qa/internal/bandplan"
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

	validator := bandplan.NewValidator(bandplan.DefaultSegments(), bandplan.DefaultRules(), bandplan.DefaultExceptions())
	verdicts := validator.CheckAll(channels)

	var failures, known int
	for _, v := range verdicts {
		switch {
		case v.Known:
			known++
			fmt.Printf("KNOWN %s: %s\n", v.Channel, strings.Join(v.Comments, "; "))
		case !v.OK:
			failures++
			fmt.Printf("ERROR %s: %s\n", v.Channel, strings.Join(v.Comments, "; "))
		}
	}

	fmt.Printf("\n%d channels checked, %d errors, %d known exceptions\n",
		len(verdicts), failures, known)

	if failures > 0 {
		return 1
	}
	return 0
}
