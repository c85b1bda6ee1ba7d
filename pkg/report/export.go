package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/raterudder/plancompare/pkg/tariff"
	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var one = decimal.NewFromInt(1)

// planRow is one line of the cost table shared by the XLSX and PDF exports.
type planRow struct {
	name       string
	rounded    int64
	cost       float64
	vsStandard string
}

func planRows(c types.Comparison) []planRow {
	var rows []planRow
	for _, pc := range c.Costs() {
		r := planRow{
			name:    pc.Name,
			rounded: pc.Rounded,
			cost:    pc.Cost.InexactFloat64(),
		}
		if pc.VsStandard != nil {
			r.vsStandard = fmt.Sprintf("%d %s", pc.VsStandard.Amount, pc.VsStandard.Direction)
		}
		rows = append(rows, r)
	}
	return rows
}

// BuildXLSX renders a workbook with a summary sheet and a consumption sheet.
func BuildXLSX(c types.Comparison) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summarySheet := "summary"
	usageSheet := "consumption"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(usageSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Plan Comparison")
	_ = f.SetCellValue(summarySheet, "A3", "Period")
	_ = f.SetCellValue(summarySheet, "B3", c.Period)
	_ = f.SetCellValue(summarySheet, "A4", "Source")
	_ = f.SetCellValue(summarySheet, "B4", c.Source)
	_ = f.SetCellValue(summarySheet, "A5", "Days")
	_ = f.SetCellValue(summarySheet, "B5", c.Days)
	_ = f.SetCellValue(summarySheet, "A6", "Currency")
	_ = f.SetCellValue(summarySheet, "B6", c.Currency)

	_ = f.SetCellValue(summarySheet, "A8", "Plan")
	_ = f.SetCellValue(summarySheet, "B8", "Cost")
	_ = f.SetCellValue(summarySheet, "C8", "Unrounded Cost")
	_ = f.SetCellValue(summarySheet, "D8", "vs Standard Plan")
	for i, r := range planRows(c) {
		row := i + 9
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r.name)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r.rounded)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), r.cost)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), r.vsStandard)
	}

	labels := bracketLabels(c)
	_ = f.SetCellValue(usageSheet, "A1", "Standard Plan bracket")
	_ = f.SetCellValue(usageSheet, "B1", "kWh")
	for i, v := range []decimal.Decimal{c.Standard.Tier1, c.Standard.Tier2, c.Standard.Tier3} {
		_ = f.SetCellValue(usageSheet, fmt.Sprintf("A%d", i+2), labels[i]+" kWh")
		_ = f.SetCellValue(usageSheet, fmt.Sprintf("B%d", i+2), v.InexactFloat64())
	}
	_ = f.SetCellValue(usageSheet, "A5", "Total")
	_ = f.SetCellValue(usageSheet, "B5", c.StandardTotalKWH.InexactFloat64())

	_ = f.SetCellValue(usageSheet, "A7", "Night/Day Plan band")
	_ = f.SetCellValue(usageSheet, "B7", "kWh")
	bands := []struct {
		name string
		kwh  decimal.Decimal
	}{
		{"Day", c.TimeOfUse.Day},
		{"Life", c.TimeOfUse.Life},
		{"Night", c.TimeOfUse.Night},
		{"Total", c.TimeOfUseTotalKWH},
	}
	for i, b := range bands {
		_ = f.SetCellValue(usageSheet, fmt.Sprintf("A%d", i+8), b.name)
		_ = f.SetCellValue(usageSheet, fmt.Sprintf("B%d", i+8), b.kwh.InexactFloat64())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders a one page statement for the comparison.
func BuildPDF(c types.Comparison) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Plan Comparison")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", c.Period))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Days: %d", c.Days))
	pdf.Ln(5)
	if !c.ComputedAt.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", c.ComputedAt.Format(time.RFC3339)))
		pdf.Ln(5)
	}

	pdf.Ln(4)
	labels := bracketLabels(c)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Standard Plan bracket", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "kWh", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i, v := range []decimal.Decimal{c.Standard.Tier1, c.Standard.Tier2, c.Standard.Tier3} {
		pdf.CellFormat(60, 6, labels[i]+" kWh", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, v.String(), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Night/Day Plan band", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "kWh", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, b := range []struct {
		name string
		kwh  decimal.Decimal
	}{
		{"Day", c.TimeOfUse.Day},
		{"Life", c.TimeOfUse.Life},
		{"Night", c.TimeOfUse.Night},
	} {
		pdf.CellFormat(60, 6, b.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", tariff.RoundInt(b.kwh)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Plan", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("Cost (%s)", c.Currency), "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "vs Standard Plan", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range planRows(c) {
		pdf.CellFormat(50, 6, r.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", r.rounded), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, r.vsStandard, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
