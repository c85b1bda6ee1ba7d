package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raterudder/plancompare/pkg/types"
)

var (
	ErrComparisonNotFound = errors.New("comparison not found")
	ErrInvalidPeriod      = errors.New("invalid period")
)

// Database defines the interface for persisting comparisons.
type Database interface {
	// PutComparison adds or replaces the comparison for its period.
	PutComparison(ctx context.Context, c types.Comparison) error
	GetComparison(ctx context.Context, period string) (types.Comparison, error)
	// ListComparisons returns every stored comparison, latest period first.
	ListComparisons(ctx context.Context) ([]types.Comparison, error)

	// Lifecycle
	Close() error
}

// ValidatePeriod reports whether period can be used as a storage key.
func ValidatePeriod(period string) error {
	if period == "" {
		return fmt.Errorf("%w: period cannot be empty", ErrInvalidPeriod)
	}
	if strings.Contains(period, "/") {
		return fmt.Errorf("%w: period cannot contain '/': %s", ErrInvalidPeriod, period)
	}
	return nil
}
