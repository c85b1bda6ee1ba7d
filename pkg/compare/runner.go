package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/metrics"
	"github.com/raterudder/plancompare/pkg/readings"
	"github.com/raterudder/plancompare/pkg/report"
	"github.com/raterudder/plancompare/pkg/storage"
	"github.com/raterudder/plancompare/pkg/tariff"
	"github.com/raterudder/plancompare/pkg/types"
)

// Runner compares every readings file found under a data directory.
type Runner struct {
	comparer *Comparer
	db       storage.Database
	out      io.Writer

	dataDir       string
	dataDirFile   string
	reportFormat  report.Format
	exportDir     string
	exportFormats []report.Format
}

// Configured creates a Runner from flags.
func Configured(tariffs *tariff.Tariffs, db storage.Database) *Runner {
	dataDir := lflag.String("data-dir", "", "Directory containing readings files (overrides --data-dir-file)")
	dataDirFile := lflag.String("data-dir-file", "electricity.txt", "File containing the path of the data directory")
	reportFormat := lflag.String("report-format", "text", "Format of the report printed for each file (text, json)")
	exportDir := lflag.String("export-dir", "", "Directory to write per-period exports to, disabled when empty")
	exportFormats := lflag.String("export-formats", "xlsx,pdf", "Comma separated export formats (text, json, xlsx, pdf)")

	r := &Runner{
		comparer: New(tariffs),
		db:       db,
		out:      os.Stdout,
	}

	lflag.Do(func() {
		r.dataDir = *dataDir
		r.dataDirFile = *dataDirFile
		if r.dataDir == "" && r.dataDirFile == "" {
			panic("one of --data-dir or --data-dir-file is required")
		}

		f, err := report.ParseFormat(*reportFormat)
		if err != nil {
			panic(fmt.Sprintf("invalid --report-format: %v", err))
		}
		if f != report.FormatText && f != report.FormatJSON {
			panic(fmt.Sprintf("--report-format must be text or json, got %s", f))
		}
		r.reportFormat = f

		r.exportDir = *exportDir
		formats, err := parseFormats(*exportFormats)
		if err != nil {
			panic(fmt.Sprintf("invalid --export-formats: %v", err))
		}
		r.exportFormats = formats
	})

	return r
}

func parseFormats(s string) ([]report.Format, error) {
	var formats []report.Format
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := report.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// Root returns the data directory, reading it from the pointer file when no
// directory was given directly.
func (r *Runner) Root() (string, error) {
	if r.dataDir != "" {
		return r.dataDir, nil
	}
	return readings.ResolveRoot(r.dataDirFile)
}

// Run processes every file under the data directory in order. A file that
// fails is logged and skipped; Run returns an error at the end if any did.
func (r *Runner) Run(ctx context.Context) error {
	root, err := r.Root()
	if err != nil {
		return err
	}
	files, err := readings.Discover(root)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Total Number of Items Found: %d\n", len(files))

	var failed int
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := readings.FormatFromPath(path); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "skipping unsupported file", slog.String("path", path))
			continue
		}

		c, err := r.ProcessFile(ctx, path)
		if err != nil {
			failed++
			log.Ctx(ctx).ErrorContext(ctx, "failed to process readings file", slog.String("path", path), slog.Any("error", err))
			continue
		}
		if err := r.writeReport(c); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// ProcessFile loads, compares and stores a single readings file and writes
// its exports.
func (r *Runner) ProcessFile(ctx context.Context, path string) (types.Comparison, error) {
	ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("path", path)))
	start := time.Now()

	c, err := r.processFile(ctx, path)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveFile(result, time.Since(start))
	return c, err
}

func (r *Runner) processFile(ctx context.Context, path string) (types.Comparison, error) {
	table, err := readings.LoadFile(ctx, path)
	if err != nil {
		metrics.ObserveParseFailure(FailureReason(err))
		return types.Comparison{}, err
	}

	c := r.comparer.Compare(ctx, table)
	if r.db != nil {
		if err := r.db.PutComparison(ctx, c); err != nil {
			return types.Comparison{}, fmt.Errorf("failed to store comparison: %w", err)
		}
	}
	if err := r.export(ctx, c); err != nil {
		return types.Comparison{}, err
	}
	return c, nil
}

func (r *Runner) export(ctx context.Context, c types.Comparison) error {
	if r.exportDir == "" || len(r.exportFormats) == 0 {
		return nil
	}
	if err := os.MkdirAll(r.exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	for _, f := range r.exportFormats {
		data, err := report.Render(c, f)
		if err != nil {
			return fmt.Errorf("failed to render %s export: %w", f, err)
		}
		path := filepath.Join(r.exportDir, c.Period+"."+f.Extension())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		log.Ctx(ctx).DebugContext(ctx, "wrote export", slog.String("export", path))
	}
	return nil
}

func (r *Runner) writeReport(c types.Comparison) error {
	if r.reportFormat == report.FormatJSON {
		return report.WriteJSON(r.out, c)
	}
	return report.WriteText(r.out, c)
}

// FailureReason classifies a readings error for metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, readings.ErrInvalidHeader):
		return "header"
	case errors.Is(err, readings.ErrInvalidDate):
		return "date"
	case errors.Is(err, readings.ErrInvalidValue):
		return "value"
	case errors.Is(err, readings.ErrUnsupportedFormat):
		return "format"
	}
	return "other"
}
