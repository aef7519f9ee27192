package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// DateLayout is the calendar-date format used for performance points
const DateLayout = "2006-01-02"

// Store is the validated, read-only dataset shared by every request. It is
// populated once by NewStore and never modified afterwards.
type Store struct {
	source      string
	data        Dataset
	holdingsErr error
	perfErr     error
	summaryErr  error
	topErr      error
	fingerprint string
}

// NewStore loads the dataset from p and validates each section. A load
// failure is returned as an error and should stop the process. Validation
// failures are kept per section and reported by the matching accessor, so
// one bad section only fails the endpoints that need it.
func NewStore(ctx context.Context, p Provider) (*Store, error) {
	ds, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s provider: %w", p.Name(), err)
	}
	if ds == nil {
		return nil, fmt.Errorf("failed to load dataset from %s provider: %w", p.Name(), ErrDataUnavailable)
	}

	s := &Store{
		source:      p.Name(),
		data:        *ds,
		holdingsErr: validateHoldings(ds.Holdings),
		perfErr:     validatePerformance(ds.Performance),
		summaryErr:  validateSummary(ds.Summary),
		topErr:      validateTopPerformers(ds.TopPerformers),
	}
	s.fingerprint = fingerprint(ds)
	return s, nil
}

// Source returns the name of the provider the dataset came from
func (s *Store) Source() string {
	return s.source
}

// Fingerprint identifies the dataset contents. It changes whenever any
// section changes and is used to namespace cached views.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

// Holdings returns the holdings. Callers must not modify the slice.
func (s *Store) Holdings() ([]models.Holding, error) {
	if s.holdingsErr != nil {
		return nil, s.holdingsErr
	}
	return s.data.Holdings, nil
}

// Performance returns the chronologically ordered performance series
func (s *Store) Performance() ([]models.PerformancePoint, error) {
	if s.perfErr != nil {
		return nil, s.perfErr
	}
	return s.data.Performance, nil
}

// SummaryFacts returns the provider-supplied summary facts
func (s *Store) SummaryFacts() (*models.SummaryFacts, error) {
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return s.data.Summary, nil
}

// TopPerformerFacts returns the provider-supplied top performer facts. They
// are only used to cross-check computed performers.
func (s *Store) TopPerformerFacts() ([]models.TopPerformerFact, error) {
	if s.topErr != nil {
		return nil, s.topErr
	}
	return s.data.TopPerformers, nil
}

// Errors returns the validation error of every section that failed
func (s *Store) Errors() map[string]error {
	out := make(map[string]error)
	for name, err := range map[string]error{
		"holdings":       s.holdingsErr,
		"performance":    s.perfErr,
		"summary":        s.summaryErr,
		"top_performers": s.topErr,
	} {
		if err != nil {
			out[name] = err
		}
	}
	return out
}

func fingerprint(ds *Dataset) string {
	payload, err := json.Marshal(ds)
	if err != nil {
		return "unhashed"
	}
	return strconv.FormatUint(xxhash.Sum64(payload), 16)
}
