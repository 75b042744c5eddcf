// Package query plans and executes validated queries against the built
// indexes. Planning picks the cheapest valid access path per query, most
// selective constraint first: a date lookup yields at most one record, a
// condition lookup avoids scanning unrelated records, and only the
// unconstrained case pays for a full scan.
package query

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-query-service/internal/domain"
	"github.com/couchcryptid/weather-query-service/internal/index"
	"github.com/couchcryptid/weather-query-service/internal/observability"
)

// Plan names the access path chosen for a query. Values double as the
// queries_total metric label.
type Plan string

const (
	PlanLimitZero      Plan = "limit_zero"
	PlanDateIndex      Plan = "date_index"
	PlanConditionIndex Plan = "condition_index"
	PlanFullScan       Plan = "full_scan"
)

// Planner executes queries against a built set of indexes. Requiring the
// indexes at construction makes "query before build" unrepresentable; after
// construction every Execute call is a pure read, safe for unbounded
// concurrent use.
type Planner struct {
	idx     *index.Indexes
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPlanner creates a Planner over already-built indexes.
func NewPlanner(idx *index.Indexes, logger *slog.Logger, metrics *observability.Metrics) *Planner {
	return &Planner{idx: idx, logger: logger, metrics: metrics}
}

// Execute returns every observation matching the query, in ascending date
// order. The result is possibly empty, never an error: queries arrive
// pre-validated, so there is no failure path here.
func (p *Planner) Execute(q domain.Query) []domain.Observation {
	start := time.Now()

	plan, results := p.run(q)

	p.metrics.QueriesTotal.WithLabelValues(string(plan)).Inc()
	p.metrics.QueryResults.Observe(float64(len(results)))
	p.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	p.logger.Debug("executed query", "query", q.String(), "plan", string(plan), "results", len(results))

	return results
}

func (p *Planner) run(q domain.Query) (Plan, []domain.Observation) {
	switch {
	// A zero limit can never produce results; skip all index work.
	case q.Limit != nil && *q.Limit == 0:
		return PlanLimitZero, nil

	// A date constraint is the most selective: at most one record, so the
	// limit is irrelevant and the condition constraint reduces to a check
	// on that single record.
	case q.Date != nil:
		return PlanDateIndex, p.dateLookup(q)

	// A condition constraint avoids scanning records with other labels.
	case q.Condition != nil:
		return PlanConditionIndex, p.conditionLookup(q)

	// No selective constraint: full scan, truncated to the limit if any.
	default:
		return PlanFullScan, truncate(p.idx.All(), q.Limit)
	}
}

func (p *Planner) dateLookup(q domain.Query) []domain.Observation {
	rec, ok := p.idx.Date(*q.Date)
	if !ok {
		return nil
	}
	if q.Condition != nil && rec.Condition != *q.Condition {
		return nil
	}
	return []domain.Observation{rec}
}

func (p *Planner) conditionLookup(q domain.Query) []domain.Observation {
	positions := truncate(p.idx.Condition(*q.Condition), q.Limit)
	if len(positions) == 0 {
		return nil
	}
	results := make([]domain.Observation, len(positions))
	for i, pos := range positions {
		results[i] = p.idx.At(pos)
	}
	return results
}

// truncate keeps the first limit elements in existing order. The index
// sequences are date-ascending, so truncation always keeps the earliest
// dates.
func truncate[T any](s []T, limit *int) []T {
	if limit == nil || *limit >= len(s) {
		return s
	}
	return s[:*limit]
}
