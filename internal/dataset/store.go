package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-query-service/internal/domain"
)

// LoadError aggregates every line the parser rejected. It is a startup-fatal
// condition: the service must not serve queries over a silently truncated
// dataset.
type LoadError struct {
	Errors []ParseError
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d line(s) failed to parse:", len(e.Errors))
	for _, pe := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(pe.Error())
	}
	return b.String()
}

// Store holds the immutable, date-sorted observation sequence. The first
// Records call reads and parses the source file; the result (or the load
// failure) is cached for the process lifetime. Concurrent first callers all
// observe the same fully-populated slice; a partially-loaded store is never
// visible.
type Store struct {
	path   string
	logger *slog.Logger

	once     sync.Once
	records  []domain.Observation
	err      error
	loadedAt time.Time
	loaded   atomic.Bool
}

// NewStore creates a Store backed by the dataset file at path. No I/O
// happens until the first Records call.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Records returns the complete date-sorted dataset, parsing and caching it
// on first call. A non-nil error means the dataset is unusable: at least one
// line was rejected, and the error enumerates every failure.
func (s *Store) Records() ([]domain.Observation, error) {
	s.once.Do(s.load)
	return s.records, s.err
}

// LoadedAt reports when the dataset was parsed. Zero until the first
// successful Records call completes.
func (s *Store) LoadedAt() time.Time {
	if !s.loaded.Load() {
		return time.Time{}
	}
	return s.loadedAt
}

// CheckReadiness returns nil once the dataset has been loaded successfully.
func (s *Store) CheckReadiness(_ context.Context) error {
	if !s.loaded.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

func (s *Store) load() {
	start := clock.Now()
	s.logger.Info("parsing weather dataset", "path", s.path)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.err = fmt.Errorf("read dataset: %w", err)
		return
	}

	records, parseErrs := Parse(string(raw))
	if len(parseErrs) > 0 {
		for _, pe := range parseErrs {
			s.logger.Error("failed to parse dataset line",
				"line", pe.Line, "text", pe.Text, "error", pe.Cause)
		}
		s.err = &LoadError{Errors: parseErrs}
		return
	}

	if len(records) == 0 {
		s.logger.Warn("dataset contains no observations; all queries will return empty results")
	} else {
		slices.SortFunc(records, func(a, b domain.Observation) int {
			return a.Date.Compare(b.Date)
		})
		s.logger.Info("parsed weather dataset",
			"records", len(records),
			"from", records[0].Date.Format("2006-01-02"),
			"to", records[len(records)-1].Date.Format("2006-01-02"),
			"duration", clock.Since(start),
		)
	}

	s.records = records
	s.loadedAt = clock.Now()
	s.loaded.Store(true)
}
