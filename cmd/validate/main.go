// Command validate performs integrity checks on the climate and rainfall
// dataset files before they are deployed behind the API. It loads both files
// with the same loader the service uses, then verifies row counts, key
// uniqueness, numeric completeness, and internal consistency.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -climate data/DailyDelhiClimateTest.csv \
//	  -rainfall data/district_wise_rainfall_normal.csv \
//	  -annual-tolerance 1.0
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	climatePath := flag.String("climate", "", "path to the daily climate CSV/XLSX file")
	rainfallPath := flag.String("rainfall", "", "path to the district rainfall normals CSV/XLSX file")
	tolerance := flag.Float64("annual-tolerance", 1.0, "allowed difference in mm between ANNUAL and the sum of months")
	flag.Parse()

	if *climatePath == "" || *rainfallPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*climatePath, *rainfallPath, *tolerance); code != 0 {
		os.Exit(code)
	}
}

func run(climatePath, rainfallPath string, tolerance float64) int {
	fmt.Println("=== Dataset Integrity Validation ===")
	fmt.Println()

	climate, err := dataset.LoadClimate(context.Background(), climatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	rainfall, err := dataset.LoadRainfall(context.Background(), rainfallPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRainfallKeys(rainfall),
		validateRainfallCompleteness(rainfall),
		validateAnnualConsistency(rainfall, tolerance),
		validateClimateCompleteness(climate),
		validateClimateOrdering(climate),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d climate rows, %d rainfall rows (%d states)\n",
		climate.Len(), rainfall.Len(), len(rainfall.States()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateRainfallKeys checks that every (state, district) is present and unique.
func validateRainfallKeys(t *dataset.RainfallTable) *phase {
	p := &phase{name: "Rainfall: location keys"}
	if t.Len() == 0 {
		p.errorf("no rows")
		return p
	}
	for i, r := range t.Records() {
		if r.State == "" || r.District == "" {
			p.errorf("row %d: blank state or district (%q, %q)", i+2, r.State, r.District)
		}
	}
	for _, loc := range t.Duplicates() {
		p.errorf("duplicate location %s / %s (first row is served)", loc.State, loc.District)
	}
	return p
}

// validateRainfallCompleteness flags blank monthly or annual cells, which
// would surface as internal errors at query time.
func validateRainfallCompleteness(t *dataset.RainfallTable) *phase {
	p := &phase{name: "Rainfall: numeric completeness"}
	for _, r := range t.Records() {
		for _, m := range domain.Months() {
			if math.IsNaN(r.Monthly[m]) {
				p.errorf("%s / %s: blank %s", r.State, r.District, m)
			} else if r.Monthly[m] < 0 {
				p.errorf("%s / %s: negative %s (%.1f)", r.State, r.District, m, r.Monthly[m])
			}
		}
		if math.IsNaN(r.Annual) {
			p.errorf("%s / %s: blank %s", r.State, r.District, domain.AnnualCode)
		}
	}
	return p
}

// validateAnnualConsistency compares ANNUAL with the sum of the twelve months.
func validateAnnualConsistency(t *dataset.RainfallTable, tolerance float64) *phase {
	p := &phase{name: "Rainfall: ANNUAL matches monthly sum"}
	for _, r := range t.Records() {
		vals, err := r.Values(domain.Months())
		if err != nil {
			continue // reported by completeness
		}
		annual, err := r.Lookup(domain.AnnualCode)
		if err != nil {
			continue
		}
		var sum float64
		for _, v := range vals {
			sum += v
		}
		if diff := math.Abs(sum - annual); diff > tolerance {
			p.errorf("%s / %s: ANNUAL=%.1f, sum of months=%.1f (off by %.2f)", r.State, r.District, annual, sum, diff)
		}
	}
	return p
}

// validateClimateCompleteness flags blank cells in the numeric columns.
func validateClimateCompleteness(t *dataset.ClimateTable) *phase {
	p := &phase{name: "Climate: numeric completeness"}
	if t.Len() == 0 {
		p.errorf("no rows")
		return p
	}
	for _, r := range t.All() {
		for _, c := range domain.ClimateColumns() {
			if math.IsNaN(r.Value(c)) {
				p.errorf("%s: blank %s", r.Date.Format(domain.DateLayout), c)
			}
		}
	}
	return p
}

// validateClimateOrdering checks that rows are in non-decreasing date order.
func validateClimateOrdering(t *dataset.ClimateTable) *phase {
	p := &phase{name: "Climate: date ordering"}
	recs := t.All()
	for i := 1; i < len(recs); i++ {
		if recs[i].Date.Before(recs[i-1].Date) {
			p.errorf("row %d: %s comes after %s", i+2,
				recs[i].Date.Format(domain.DateLayout), recs[i-1].Date.Format(domain.DateLayout))
		}
	}
	return p
}
