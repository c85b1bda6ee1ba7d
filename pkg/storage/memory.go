package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/raterudder/plancompare/pkg/types"
)

// MemoryProvider keeps comparisons in memory for the life of the process.
type MemoryProvider struct {
	mu          sync.Mutex
	comparisons map[string]types.Comparison
}

// NewMemory creates an empty MemoryProvider.
func NewMemory() *MemoryProvider {
	return &MemoryProvider{
		comparisons: make(map[string]types.Comparison),
	}
}

func (m *MemoryProvider) PutComparison(ctx context.Context, c types.Comparison) error {
	if err := ValidatePeriod(c.Period); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparisons[c.Period] = c
	return nil
}

func (m *MemoryProvider) GetComparison(ctx context.Context, period string) (types.Comparison, error) {
	if err := ValidatePeriod(period); err != nil {
		return types.Comparison{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comparisons[period]
	if !ok {
		return types.Comparison{}, fmt.Errorf("%w: %s", ErrComparisonNotFound, period)
	}
	return c, nil
}

func (m *MemoryProvider) ListComparisons(ctx context.Context) ([]types.Comparison, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Comparison, 0, len(m.comparisons))
	for _, c := range m.comparisons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period > out[j].Period
	})
	return out, nil
}

func (m *MemoryProvider) Close() error {
	return nil
}
