package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raterudder/plancompare/pkg/compare"
	"github.com/raterudder/plancompare/pkg/metrics"
	"github.com/raterudder/plancompare/pkg/storage"
	"github.com/raterudder/plancompare/pkg/storage/storagemock"
	"github.com/raterudder/plancompare/pkg/tariff"
	"github.com/raterudder/plancompare/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(db storage.Database) *Server {
	tariffs := tariff.Default()
	return &Server{
		comparer:   compare.New(&tariffs),
		storage:    db,
		listenAddr: ":8080",
		serverName: "plancompare-test",
	}
}

// weekdayCSV is a single weekday with 5 kWh at 10:00 and 3 kWh at 22:00.
func weekdayCSV() string {
	var sb strings.Builder
	sb.WriteString("日付")
	for h := 0; h < types.HoursPerDay; h++ {
		fmt.Fprintf(&sb, ",%d時台", h)
	}
	sb.WriteString("\n2024/01/01")
	for h := 0; h < types.HoursPerDay; h++ {
		switch h {
		case 10:
			sb.WriteString(",5")
		case 22:
			sb.WriteString(",3")
		default:
			sb.WriteString(",0")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	h := newTestServer(storage.NewMemory()).setupHandler()
	w := serve(h, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "plancompare-test", w.Header().Get("Server"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestCompareAndBrowse(t *testing.T) {
	h := newTestServer(storage.NewMemory()).setupHandler()

	w := serve(h, "POST", "/api/compare?period=2024-01", weekdayCSV())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var c types.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, "2024-01", c.Period)
	assert.Equal(t, uploadSource, c.Source)
	assert.Equal(t, int64(953), c.StandardCost.Rounded)
	assert.Equal(t, int64(794), c.NightCost.Rounded)
	assert.Equal(t, int64(763), c.DayCost.Rounded)

	t.Run("get", func(t *testing.T) {
		w := serve(h, "GET", "/api/comparisons/2024-01", "")
		require.Equal(t, http.StatusOK, w.Code)
		var got types.Comparison
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(953), got.StandardCost.Rounded)
	})

	t.Run("list", func(t *testing.T) {
		w := serve(h, "GET", "/api/comparisons", "")
		require.Equal(t, http.StatusOK, w.Code)
		var got []types.Comparison
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "2024-01", got[0].Period)
	})

	t.Run("export text", func(t *testing.T) {
		w := serve(h, "GET", "/api/comparisons/2024-01/export", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "* Total cost for Day Plan: 763 JPY (-190 JPY less vs Standard Plan)")
	})

	t.Run("export pdf", func(t *testing.T) {
		w := serve(h, "GET", "/api/comparisons/2024-01/export?format=pdf", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="2024-01.pdf"`, w.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	})

	t.Run("export gzip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/comparisons/2024-01/export?format=xlsx", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	})

	t.Run("export unknown format", func(t *testing.T) {
		w := serve(h, "GET", "/api/comparisons/2024-01/export?format=html", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("replace", func(t *testing.T) {
		w := serve(h, "POST", "/api/compare?period=2024-01", "日付,"+hourHeaders()+"\n2024/01/01\n")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = serve(h, "GET", "/api/comparisons/2024-01", "")
		var got types.Comparison
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(796), got.StandardCost.Rounded)
	})
}

func hourHeaders() string {
	headers := make([]string, types.HoursPerDay)
	for h := range headers {
		headers[h] = fmt.Sprintf("%d時台", h)
	}
	return strings.Join(headers, ",")
}

func TestCompareRejects(t *testing.T) {
	h := newTestServer(storage.NewMemory()).setupHandler()

	tests := []struct {
		name   string
		target string
		body   string
		code   int
	}{
		{"missing period", "/api/compare", weekdayCSV(), http.StatusBadRequest},
		{"unknown format", "/api/compare?period=2024-01&format=ods", weekdayCSV(), http.StatusBadRequest},
		{"bad header", "/api/compare?period=2024-01", "date,0,1,2\n2024/01/01,1,2,3\n", http.StatusBadRequest},
		{"bad date", "/api/compare?period=2024-01", "日付," + hourHeaders() + "\n01-01-2024,1\n", http.StatusBadRequest},
		{"too large", "/api/compare?period=2024-01", "日付," + hourHeaders() + "\n" + strings.Repeat("2024/01/01,1\n", maxUploadBytes/12+1), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, "POST", tt.target, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}

	w := serve(h, "GET", "/api/comparisons", "")
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCompareHeaderOnly(t *testing.T) {
	h := newTestServer(storage.NewMemory()).setupHandler()
	w := serve(h, "POST", "/api/compare?period=2024-04", "日付,"+hourHeaders()+"\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var c types.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, int64(796), c.StandardCost.Rounded)
	assert.Equal(t, int64(565), c.NightCost.Rounded)
	assert.Equal(t, int64(565), c.DayCost.Rounded)
}

func TestGetComparisonNotFound(t *testing.T) {
	h := newTestServer(storage.NewMemory()).setupHandler()
	w := serve(h, "GET", "/api/comparisons/2030-01", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"comparison not found"}`, w.Body.String())

	w = serve(h, "GET", "/api/comparisons/2030-01/export?format=pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStorageErrors(t *testing.T) {
	db := new(storagemock.MockDatabase)
	db.On("PutComparison", mock.Anything, mock.Anything).Return(errors.New("unavailable"))
	db.On("ListComparisons", mock.Anything).Return([]types.Comparison(nil), errors.New("unavailable"))
	db.On("GetComparison", mock.Anything, "2024-01").Return(types.Comparison{}, errors.New("unavailable"))
	h := newTestServer(db).setupHandler()

	w := serve(h, "POST", "/api/compare?period=2024-01", weekdayCSV())
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = serve(h, "GET", "/api/comparisons", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = serve(h, "GET", "/api/comparisons/2024-01", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	db.AssertExpectations(t)
}

func TestGetTariffs(t *testing.T) {
	h := newTestServer(storage.NewMemory()).setupHandler()
	w := serve(h, "GET", "/api/tariffs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got tariff.Tariffs
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "JPY", got.Currency)
	assert.Equal(t, "796.06", got.Standard.BaseCharge.String())
	assert.Equal(t, types.HourSet{9, 10, 11, 12, 13, 14, 15}, got.Schedules.Weekday.Day)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.Init()
	h := newTestServer(storage.NewMemory()).setupHandler()
	serve(h, "POST", "/api/compare?period=2024-01", weekdayCSV())

	w := serve(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plancompare_files_processed_total")
	assert.Contains(t, w.Body.String(), `plancompare_plan_cost{plan="day"} 763`)
}
