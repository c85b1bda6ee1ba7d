package readings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/types"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is the encoding of a readings file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath determines the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat parses a format name such as "csv" or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Parse reads a table in the given format.
func Parse(r io.Reader, format Format) (types.ReadingTable, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	}
	return types.ReadingTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// PeriodLabel extracts the billing period from a file name: the text after
// the first underscore, without the extension. "usage_2024-01.csv" gives
// "2024-01". Names without an underscore are returned without the extension.
func PeriodLabel(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if _, after, ok := strings.Cut(name, "_"); ok {
		return after
	}
	return name
}

// LoadFile reads the table stored at path and labels it with the period
// taken from the file name.
func LoadFile(ctx context.Context, path string) (types.ReadingTable, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return types.ReadingTable{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return types.ReadingTable{}, fmt.Errorf("failed to open readings file: %w", err)
	}
	defer f.Close()

	table, err := Parse(f, format)
	if err != nil {
		return types.ReadingTable{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	table.Period = PeriodLabel(path)
	table.Source = path
	log.Ctx(ctx).DebugContext(
		ctx,
		"loaded readings",
		slog.String("path", path),
		slog.String("period", table.Period),
		slog.Int("days", len(table.Days)),
	)
	return table, nil
}

// Discover lists every regular file below root in lexical order. Hidden files
// and directories are skipped.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// ResolveRoot reads the data directory from a pointer file that contains a
// single path, optionally wrapped in double quotes.
func ResolveRoot(pointerFile string) (string, error) {
	b, err := os.ReadFile(pointerFile)
	if err != nil {
		return "", fmt.Errorf("failed to read data dir file: %w", err)
	}
	root := strings.TrimSpace(string(b))
	if len(root) >= 2 && strings.HasPrefix(root, `"`) && strings.HasSuffix(root, `"`) {
		root = root[1 : len(root)-1]
	}
	if root == "" {
		return "", fmt.Errorf("data dir file %s is empty", pointerFile)
	}
	return root, nil
}
