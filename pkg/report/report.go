package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raterudder/plancompare/pkg/tariff"
	"github.com/raterudder/plancompare/pkg/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Format is an output format for a comparison.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Extension returns the file extension used when exporting the format.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Render encodes the comparison in the given format.
func Render(c types.Comparison, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		var sb strings.Builder
		if err := WriteText(&sb, c); err != nil {
			return nil, err
		}
		return []byte(sb.String()), nil
	case FormatJSON:
		var sb strings.Builder
		if err := WriteJSON(&sb, c); err != nil {
			return nil, err
		}
		return []byte(sb.String()), nil
	case FormatXLSX:
		return BuildXLSX(c)
	case FormatPDF:
		return BuildPDF(c)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

const divider = "++++++++++++++++++++++++++++++++++++++++"

var printer = message.NewPrinter(language.English)

// bracketLabels returns the kWh range each standard bracket covers, such as
// "0-120", "121-300" and "301+".
func bracketLabels(c types.Comparison) [3]string {
	l1, l2 := c.Tier1LimitKWH.String(), c.Tier2LimitKWH.String()
	next1 := c.Tier1LimitKWH.Add(one).String()
	next2 := c.Tier2LimitKWH.Add(one).String()
	return [3]string{
		"0-" + l1,
		next1 + "-" + l2,
		next2 + "+",
	}
}

func deltaText(pc types.PlanCost, currency string) string {
	if pc.VsStandard == nil {
		return ""
	}
	return fmt.Sprintf(" (%d %s %s vs Standard Plan)", pc.VsStandard.Amount, currency, pc.VsStandard.Direction)
}

// WriteText writes the console report for one period.
func WriteText(w io.Writer, c types.Comparison) error {
	labels := bracketLabels(c)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", divider)
	fmt.Fprintf(&sb, "\nElectricity consumption by tier for %s (Standard Plan):\n", c.Period)
	fmt.Fprintf(&sb, "%s kWh: %s kWh\n", labels[0], c.Standard.Tier1)
	fmt.Fprintf(&sb, "%s kWh: %s kWh\n", labels[1], c.Standard.Tier2)
	fmt.Fprintf(&sb, "%s kWh: %s kWh\n", labels[2], c.Standard.Tier3)
	fmt.Fprintf(&sb, "* Total kWh consumed: %s kWh\n", c.StandardTotalKWH)
	sb.WriteString(printer.Sprintf("* Total cost for %s: %d %s\n", c.StandardCost.Name, c.StandardCost.Rounded, c.Currency))

	fmt.Fprintf(&sb, "\nElectricity consumption by tier for %s (Night/Day Plans):\n", c.Period)
	fmt.Fprintf(&sb, "Day: %d kWh\n", tariff.RoundInt(c.TimeOfUse.Day))
	fmt.Fprintf(&sb, "Life: %d kWh\n", tariff.RoundInt(c.TimeOfUse.Life))
	fmt.Fprintf(&sb, "Night: %d kWh\n", tariff.RoundInt(c.TimeOfUse.Night))
	fmt.Fprintf(&sb, "* Total kWh consumed: %d kWh\n", tariff.RoundInt(c.TimeOfUseTotalKWH))
	for _, pc := range []types.PlanCost{c.NightCost, c.DayCost} {
		sb.WriteString(printer.Sprintf("* Total cost for %s: %d %s", pc.Name, pc.Rounded, c.Currency))
		sb.WriteString(deltaText(pc, c.Currency))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n%s\n", divider)

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes the comparison as indented JSON.
func WriteJSON(w io.Writer, c types.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
