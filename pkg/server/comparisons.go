package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/raterudder/plancompare/pkg/compare"
	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/metrics"
	"github.com/raterudder/plancompare/pkg/readings"
	"github.com/raterudder/plancompare/pkg/report"
	"github.com/raterudder/plancompare/pkg/storage"
	"github.com/raterudder/plancompare/pkg/types"
)

// uploadSource is recorded as the source of comparisons made from uploads.
const uploadSource = "upload"

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	period := r.URL.Query().Get("period")
	if err := storage.ValidatePeriod(period); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(readings.FormatCSV)
	}
	format, err := readings.ParseFormat(formatName)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("period", period)))

	start := time.Now()
	table, err := readings.Parse(http.MaxBytesReader(w, r.Body, maxUploadBytes), format)
	if err != nil {
		metrics.ObserveFile(metrics.ResultError, time.Since(start))
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, "readings file too large", http.StatusRequestEntityTooLarge)
			return
		}
		metrics.ObserveParseFailure(compare.FailureReason(err))
		log.Ctx(ctx).WarnContext(ctx, "rejected readings upload", slog.Any("error", err))
		writeJSONError(w, "invalid readings file: "+err.Error(), http.StatusBadRequest)
		return
	}
	table.Period = period
	table.Source = uploadSource

	c := s.comparer.Compare(ctx, table)
	if err := s.storage.PutComparison(ctx, c); err != nil {
		metrics.ObserveFile(metrics.ResultError, time.Since(start))
		log.Ctx(ctx).ErrorContext(ctx, "failed to store comparison", slog.Any("error", err))
		writeJSONError(w, "failed to store comparison", http.StatusInternalServerError)
		return
	}
	metrics.ObserveFile(metrics.ResultSuccess, time.Since(start))

	writeJSON(w, c)
}

func (s *Server) handleListComparisons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	comparisons, err := s.storage.ListComparisons(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list comparisons", slog.Any("error", err))
		writeJSONError(w, "failed to list comparisons", http.StatusInternalServerError)
		return
	}
	if comparisons == nil {
		comparisons = []types.Comparison{}
	}
	writeJSON(w, comparisons)
}

// getComparison loads the comparison named by the request path, writing an
// error response and returning false when it cannot.
func (s *Server) getComparison(w http.ResponseWriter, r *http.Request) (types.Comparison, bool) {
	ctx := r.Context()
	period := r.PathValue("period")
	if err := storage.ValidatePeriod(period); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return types.Comparison{}, false
	}
	c, err := s.storage.GetComparison(ctx, period)
	if errors.Is(err, storage.ErrComparisonNotFound) {
		writeJSONError(w, "comparison not found", http.StatusNotFound)
		return types.Comparison{}, false
	}
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get comparison", slog.String("period", period), slog.Any("error", err))
		writeJSONError(w, "failed to get comparison", http.StatusInternalServerError)
		return types.Comparison{}, false
	}
	return c, true
}

func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	c, ok := s.getComparison(w, r)
	if !ok {
		return
	}
	writeJSON(w, c)
}

func (s *Server) handleExportComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(report.FormatText)
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, ok := s.getComparison(w, r)
	if !ok {
		return
	}

	data, err := report.Render(c, format)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to render export", slog.String("format", string(format)), slog.Any("error", err))
		writeJSONError(w, "failed to render export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == report.FormatXLSX || format == report.FormatPDF {
		w.Header().Set("Content-Disposition", `attachment; filename="`+c.Period+"."+format.Extension()+`"`)
	}
	if _, err := w.Write(data); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleGetTariffs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.comparer.Tariffs())
}
