package tariff

import (
	"fmt"
	"testing"
	"time"

	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// monday is 2024-01-01, saturday is 2024-01-06
var (
	monday   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s got %s", want, got), msgAndArgs...)
	}
}

func singleCellTable(kwh string) types.ReadingTable {
	day := types.DayReadings{Date: monday}
	day.KWH[12] = dec(kwh)
	return types.ReadingTable{Days: []types.DayReadings{day}}
}
