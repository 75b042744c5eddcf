package domain

import (
	"strings"
	"time"
)

// Condition is the discrete weather classification of an observation.
// It is an opaque case-insensitive token; new labels may appear in future
// datasets without code changes, so callers must not match exhaustively.
type Condition string

// Known condition labels in the current dataset export.
const (
	Drizzle Condition = "drizzle"
	Rain    Condition = "rain"
	Snow    Condition = "snow"
	Sun     Condition = "sun"
	Fog     Condition = "fog"
)

// KnownConditions returns the condition labels recognized by the request
// layer, in a stable order suitable for error messages.
func KnownConditions() []Condition {
	return []Condition{Drizzle, Rain, Snow, Sun, Fog}
}

// ParseCondition normalizes a raw label to its canonical Condition.
// Matching is case-insensitive. Returns false for labels not in the
// known set.
func ParseCondition(raw string) (Condition, bool) {
	c := Condition(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range KnownConditions() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func (c Condition) String() string { return string(c) }

// Observation is one daily weather record. Values are immutable after
// parsing; indexes reference positions into the dataset's backing slice
// rather than copying observations.
type Observation struct {
	// Date of the observation, midnight UTC.
	Date time.Time `json:"date"`

	// Precipitation over the day in millimeters.
	Precipitation float64 `json:"precipitation"`

	// Daily high temperature in degrees Celsius.
	TempMax float64 `json:"temp_max"`

	// Daily low temperature in degrees Celsius.
	TempMin float64 `json:"temp_min"`

	// Average wind speed over the day in m/s.
	Wind float64 `json:"wind"`

	// Condition label for the day.
	Condition Condition `json:"weather"`
}

// Day builds the canonical map-key form of a calendar date: midnight UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
