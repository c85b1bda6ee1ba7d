package storagemock

import (
	"context"

	"github.com/raterudder/plancompare/pkg/storage"
	"github.com/raterudder/plancompare/pkg/types"
	"github.com/stretchr/testify/mock"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) PutComparison(ctx context.Context, c types.Comparison) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockDatabase) GetComparison(ctx context.Context, period string) (types.Comparison, error) {
	args := m.Called(ctx, period)
	if len(args) > 0 {
		return args.Get(0).(types.Comparison), args.Error(1)
	}
	return types.Comparison{}, nil
}

func (m *MockDatabase) ListComparisons(ctx context.Context) ([]types.Comparison, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		return args.Get(0).([]types.Comparison), args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	if len(args) > 0 {
		return args.Error(0)
	}
	return nil
}
