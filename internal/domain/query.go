package domain

import (
	"fmt"
	"strings"
	"time"
)

// Query is a validated read request over the dataset. All three constraints
// are optional and conjunctive: a matching observation must satisfy every
// constraint that is present. The request layer owns converting loosely-typed
// parameters into a Query; by the time one reaches the planner its fields are
// well-typed (non-negative limit, real calendar date, known condition).
type Query struct {
	// Limit caps the number of results when set. Zero is valid and always
	// yields an empty result.
	Limit *int

	// Date restricts the result to the single observation on that day,
	// if any. At most one observation exists per date.
	Date *time.Time

	// Condition restricts results to observations with this label.
	Condition *Condition
}

// String renders the query for logs, listing only the constraints present.
func (q Query) String() string {
	parts := make([]string, 0, 3)
	if q.Limit != nil {
		parts = append(parts, fmt.Sprintf("limit=%d", *q.Limit))
	}
	if q.Date != nil {
		parts = append(parts, "date="+q.Date.Format("2006-01-02"))
	}
	if q.Condition != nil {
		parts = append(parts, "weather="+q.Condition.String())
	}
	if len(parts) == 0 {
		return "unconstrained"
	}
	return strings.Join(parts, " ")
}
