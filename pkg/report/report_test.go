package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/raterudder/plancompare/pkg/tariff"
	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sampleComparison is a weekday with 5 kWh at 10:00 and 3 kWh at 22:00.
func sampleComparison() types.Comparison {
	t := tariff.Default()
	standard := types.StandardAmounts{
		Tier1: decimal.NewFromInt(8),
		Tier2: decimal.Zero,
		Tier3: decimal.Zero,
	}
	tou := types.TimeOfUseAmounts{
		Day:   decimal.NewFromInt(5),
		Life:  decimal.NewFromInt(3),
		Night: decimal.Zero,
	}
	sc := tariff.StandardPlanCost(t.Standard, tariff.StandardCost(standard, t.Standard))
	return types.Comparison{
		Period:            "2024-01",
		Source:            "usage_2024-01.csv",
		Currency:          t.Currency,
		Days:              1,
		ComputedAt:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Standard:          standard,
		StandardTotalKWH:  standard.Total(),
		Tier1LimitKWH:     t.Standard.Tier1LimitKWH,
		Tier2LimitKWH:     t.Standard.Tier2LimitKWH,
		TimeOfUse:         tou,
		TimeOfUseTotalKWH: tou.Total(),
		StandardCost:      sc,
		NightCost:         tariff.TimeOfUsePlanCost(t.Night, tariff.TimeOfUseCost(tou, t.Night), sc),
		DayCost:           tariff.TimeOfUsePlanCost(t.Day, tariff.TimeOfUseCost(tou, t.Day), sc),
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", " xlsx ", "pdf"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("html")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, "txt", FormatText.Extension())
	assert.Equal(t, "xlsx", FormatXLSX.Extension())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleComparison()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\n"+strings.Repeat("+", 40)+"\n"))
	assert.Contains(t, out, "Electricity consumption by tier for 2024-01 (Standard Plan):\n")
	assert.Contains(t, out, "0-120 kWh: 8 kWh\n")
	assert.Contains(t, out, "121-300 kWh: 0 kWh\n")
	assert.Contains(t, out, "301+ kWh: 0 kWh\n")
	assert.Contains(t, out, "* Total cost for Standard Plan: 953 JPY\n")

	assert.Contains(t, out, "Electricity consumption by tier for 2024-01 (Night/Day Plans):\n")
	assert.Contains(t, out, "Day: 5 kWh\nLife: 3 kWh\nNight: 0 kWh\n")
	assert.Contains(t, out, "* Total kWh consumed: 8 kWh\n")
	assert.Contains(t, out, "* Total cost for Night Plan: 794 JPY (-159 JPY less vs Standard Plan)\n")
	assert.Contains(t, out, "* Total cost for Day Plan: 763 JPY (-190 JPY less vs Standard Plan)\n")
}

func TestWriteTextThousandsSeparator(t *testing.T) {
	c := sampleComparison()
	c.StandardCost.Rounded = 12345
	c.NightCost.Rounded = 11000
	c.NightCost.VsStandard = &types.PlanDelta{Amount: -1345, Direction: types.DirectionLess}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, c))
	assert.Contains(t, buf.String(), "* Total cost for Standard Plan: 12,345 JPY\n")
	assert.Contains(t, buf.String(), "* Total cost for Night Plan: 11,000 JPY (-1345 JPY less vs Standard Plan)\n")
}

func TestWriteTextCustomLimits(t *testing.T) {
	c := sampleComparison()
	c.Tier1LimitKWH = decimal.NewFromInt(100)
	c.Tier2LimitKWH = decimal.NewFromInt(250)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, c))
	assert.Contains(t, buf.String(), "0-100 kWh: 8 kWh\n")
	assert.Contains(t, buf.String(), "101-250 kWh: 0 kWh\n")
	assert.Contains(t, buf.String(), "251+ kWh: 0 kWh\n")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleComparison()))

	var got types.Comparison
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2024-01", got.Period)
	assert.Equal(t, int64(953), got.StandardCost.Rounded)
	require.NotNil(t, got.DayCost.VsStandard)
	assert.Equal(t, int64(-190), got.DayCost.VsStandard.Amount)
	assert.Equal(t, types.DirectionLess, got.DayCost.VsStandard.Direction)
	assert.Nil(t, got.StandardCost.VsStandard)
}

func TestBuildXLSX(t *testing.T) {
	data, err := BuildXLSX(sampleComparison())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	period, err := f.GetCellValue("summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", period)

	plan, err := f.GetCellValue("summary", "A10")
	require.NoError(t, err)
	assert.Equal(t, "Night Plan", plan)
	cost, err := f.GetCellValue("summary", "B10")
	require.NoError(t, err)
	assert.Equal(t, "794", cost)
	delta, err := f.GetCellValue("summary", "D10")
	require.NoError(t, err)
	assert.Equal(t, "-159 less", delta)

	bracket, err := f.GetCellValue("consumption", "A2")
	require.NoError(t, err)
	assert.Equal(t, "0-120 kWh", bracket)
}

func TestBuildPDF(t *testing.T) {
	data, err := BuildPDF(sampleComparison())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRender(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON, FormatXLSX, FormatPDF} {
		data, err := Render(sampleComparison(), f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, data, f)
	}
	_, err := Render(sampleComparison(), Format("html"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
