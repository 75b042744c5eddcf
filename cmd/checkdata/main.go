// Command checkdata lints a weather dataset CSV file before it is deployed
// with the service. It reports every malformed line, every duplicated date,
// and a summary of the covered date range, then exits non-zero if the file
// would fail service startup.
//
// Usage:
//
//	go run ./cmd/checkdata -data data/seattle-weather.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/weather-query-service/internal/dataset"
	"github.com/couchcryptid/weather-query-service/internal/index"
)

func main() {
	dataPath := flag.String("data", "", "path to the dataset CSV file")
	flag.Parse()

	if *dataPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*dataPath))
}

func run(path string) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: cannot read %s: %v\n", path, err)
		return 1
	}

	failed := false

	records, parseErrs := dataset.Parse(string(raw))
	if len(parseErrs) > 0 {
		failed = true
		fmt.Printf("FAIL: %d line(s) failed to parse\n", len(parseErrs))
		for _, pe := range parseErrs {
			fmt.Printf("  line %d: %s\n    %v\n", pe.Line, pe.Text, pe.Cause)
		}
	} else {
		fmt.Println("OK: all lines parsed")
	}

	if _, err := index.Build(records); err != nil {
		failed = true
		fmt.Printf("FAIL: %v\n", err)
	} else {
		fmt.Println("OK: one record per date")
	}

	if len(records) == 0 {
		fmt.Println("WARN: dataset contains no observations")
	} else {
		first, last := records[0].Date, records[0].Date
		perCondition := map[string]int{}
		for _, rec := range records {
			if rec.Date.Before(first) {
				first = rec.Date
			}
			if rec.Date.After(last) {
				last = rec.Date
			}
			perCondition[rec.Condition.String()]++
		}
		fmt.Printf("records: %d, range: %s to %s\n",
			len(records), first.Format("2006-01-02"), last.Format("2006-01-02"))
		for condition, n := range perCondition {
			fmt.Printf("  %s: %d\n", condition, n)
		}
	}

	if failed {
		return 1
	}
	return 0
}
