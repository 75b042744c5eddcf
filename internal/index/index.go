// Package index derives the lookup structures that make common query shapes
// cheap: a date index (date → single observation) and a condition index
// (condition → date-ordered observations). Both are built exactly once from
// the loaded dataset and are immutable afterward, so they may be read
// concurrently without locking.
package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/weather-query-service/internal/domain"
)

// Indexes holds the backing record sequence and the two lookup structures
// over it. Index entries are positions into the backing slice, never copies
// of the observations, so the indexes and the dataset share one lifetime.
//
// Build is the only constructor; there is no way to rebuild or mutate an
// Indexes value, which makes "build twice" and "query before build"
// unrepresentable rather than runtime-checked.
type Indexes struct {
	records     []domain.Observation
	byDate      map[time.Time]int
	byCondition map[domain.Condition][]int
}

// DuplicateDateError reports dates that appear on more than one record.
// The date index relies on one observation per calendar day; rather than
// silently keeping an arbitrary record, the build rejects the dataset.
type DuplicateDateError struct {
	Dates []time.Time
}

func (e *DuplicateDateError) Error() string {
	days := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		days[i] = d.Format("2006-01-02")
	}
	return fmt.Sprintf("dataset violates one-record-per-date: %s", strings.Join(days, ", "))
}

// Build constructs both indexes in a single pass over the date-sorted
// record sequence. It must be given the Store's cached records; the returned
// Indexes keep positions into that exact slice.
func Build(records []domain.Observation) (*Indexes, error) {
	ix := &Indexes{
		records:     records,
		byDate:      make(map[time.Time]int, len(records)),
		byCondition: make(map[domain.Condition][]int),
	}

	var dups []time.Time
	for i, rec := range records {
		if _, seen := ix.byDate[rec.Date]; seen {
			dups = append(dups, rec.Date)
			continue
		}
		ix.byDate[rec.Date] = i
		ix.byCondition[rec.Condition] = append(ix.byCondition[rec.Condition], i)
	}

	if len(dups) > 0 {
		sort.Slice(dups, func(i, j int) bool { return dups[i].Before(dups[j]) })
		return nil, &DuplicateDateError{Dates: dups}
	}
	return ix, nil
}

// All returns the full date-sorted backing sequence.
func (ix *Indexes) All() []domain.Observation {
	return ix.records
}

// Len reports the number of indexed observations.
func (ix *Indexes) Len() int {
	return len(ix.records)
}

// Date looks up the single observation on the given day.
func (ix *Indexes) Date(day time.Time) (domain.Observation, bool) {
	i, ok := ix.byDate[day]
	if !ok {
		return domain.Observation{}, false
	}
	return ix.records[i], true
}

// Condition returns the positions of all observations with the given label,
// preserving the dataset's date order. The result is empty for labels absent
// from the dataset.
func (ix *Indexes) Condition(c domain.Condition) []int {
	return ix.byCondition[c]
}

// At returns the observation at a backing-slice position previously obtained
// from Condition.
func (ix *Indexes) At(pos int) domain.Observation {
	return ix.records[pos]
}
