// Package dataset loads the fixed observation dataset: a line-oriented CSV
// parser producing typed records or structured per-line errors, and a Store
// that parses exactly once and caches the date-sorted result.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-query-service/internal/domain"
)

// ParseError describes one rejected input line with enough context to fix
// the source file.
type ParseError struct {
	Line  int    // 1-based over the physical file, header included
	Text  string // the offending raw line
	Cause error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Cause)
}

func (e ParseError) Unwrap() error { return e.Cause }

// columns of the dataset export, in order.
const (
	colDate = iota
	colPrecipitation
	colTempMax
	colTempMin
	colWind
	colCondition
	columnCount
)

// Parse converts raw dataset text into observations. The first line is a
// header and is skipped; blank lines are ignored. Every malformed line is
// reported, so callers see the full set of problems in one pass rather than
// failing on the first.
func Parse(raw string) ([]domain.Observation, []ParseError) {
	lines := strings.Split(raw, "\n")

	var (
		records []domain.Observation
		errs    []ParseError
	)
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		rec, err := parseRow(line)
		if err != nil {
			errs = append(errs, ParseError{Line: i + 1, Text: line, Cause: err})
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

// parseRow parses one data line: date,precipitation,temp_max,temp_min,wind,weather.
func parseRow(line string) (domain.Observation, error) {
	fields := strings.Split(line, ",")
	if len(fields) != columnCount {
		return domain.Observation{}, fmt.Errorf("expected %d fields, got %d", columnCount, len(fields))
	}

	date, err := ParseDate(fields[colDate])
	if err != nil {
		return domain.Observation{}, err
	}

	precipitation, err := parseMeasurement("precipitation", fields[colPrecipitation])
	if err != nil {
		return domain.Observation{}, err
	}
	tempMax, err := parseMeasurement("temp_max", fields[colTempMax])
	if err != nil {
		return domain.Observation{}, err
	}
	tempMin, err := parseMeasurement("temp_min", fields[colTempMin])
	if err != nil {
		return domain.Observation{}, err
	}
	wind, err := parseMeasurement("wind", fields[colWind])
	if err != nil {
		return domain.Observation{}, err
	}

	condition, ok := domain.ParseCondition(fields[colCondition])
	if !ok {
		return domain.Observation{}, fmt.Errorf("unknown weather condition %q", fields[colCondition])
	}

	return domain.Observation{
		Date:          date,
		Precipitation: precipitation,
		TempMax:       tempMax,
		TempMin:       tempMin,
		Wind:          wind,
		Condition:     condition,
	}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date into canonical midnight-UTC form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d.UTC(), nil
}

func parseMeasurement(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", name, s)
	}
	return v, nil
}
