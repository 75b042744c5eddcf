package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-query-service/internal/dataset"
	"github.com/couchcryptid/weather-query-service/internal/domain"
)

// parseQuery converts the loosely-typed limit/date/weather query parameters
// into a validated domain.Query. Error messages tell the caller what a valid
// value looks like.
func parseQuery(r *http.Request) (domain.Query, error) {
	params := r.URL.Query()
	var q domain.Query

	if limitStr := params.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return domain.Query{}, fmt.Errorf(
				"invalid limit value in query parameters: %s - expected a non-negative integer", limitStr)
		}
		q.Limit = &limit
	}

	if dateStr := params.Get("date"); dateStr != "" {
		date, err := dataset.ParseDate(dateStr)
		if err != nil {
			return domain.Query{}, fmt.Errorf(
				"invalid date value in query parameters: %s - expected a date of the form YYYY-MM-DD", dateStr)
		}
		q.Date = &date
	}

	if weatherStr := params.Get("weather"); weatherStr != "" {
		condition, ok := domain.ParseCondition(weatherStr)
		if !ok {
			return domain.Query{}, fmt.Errorf(
				"invalid weather kind: %s - expected one of the following: %s",
				weatherStr, knownConditionList())
		}
		q.Condition = &condition
	}

	return q, nil
}

func knownConditionList() string {
	known := domain.KnownConditions()
	names := make([]string, len(known))
	for i, c := range known {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
