// Package provider supplies the portfolio dataset and holds it, validated,
// for the lifetime of the process.
package provider

import (
	"context"
	"errors"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

var (
	// ErrDataUnavailable means a section of the dataset is missing or empty
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrMalformedInput means the provider returned rows that fail validation
	ErrMalformedInput = errors.New("malformed input")
)

// Dataset is the four tabular structures every provider supplies
type Dataset struct {
	Holdings      []models.Holding
	Performance   []models.PerformancePoint
	Summary       *models.SummaryFacts
	TopPerformers []models.TopPerformerFact
}

// Provider loads the dataset. It is called exactly once, at startup.
type Provider interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}
