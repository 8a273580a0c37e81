package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuesioner/adapters/chart"
	"kuesioner/app"
	"kuesioner/domain/survey"
	"kuesioner/internal"
	"kuesioner/ports"
)

var quietLogger = internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard)

type stubSource struct {
	result ports.FetchResult
}

func (s stubSource) FetchTable(ctx context.Context) ports.FetchResult {
	return s.result
}

type stubSink struct {
	result   ports.SubmitResult
	received []ports.Submission
}

func (s *stubSink) Submit(ctx context.Context, submission ports.Submission) ports.SubmitResult {
	s.received = append(s.received, submission)
	return s.result
}

var sampleTable = survey.RawTable{
	{"timestamp", "nama", "A1", "A2", "L1"},
	{"t1", "Budi", "Ya", "Tidak", "Ya"},
	{"t2", "Sari", "Ya", "Ya", ""},
}

func newTestServer(source ports.TableSource, sink *stubSink) *Server {
	return NewServer(Dependencies{
		Tally:       app.NewTallyService(source, quietLogger),
		Submissions: app.NewSubmissionService(sink, []string{"nama"}, quietLogger),
		Renderer:    chart.NewRenderer(),
		Logger:      quietLogger,
	}, gin.TestMode)
}

func liveServer() *Server {
	return newTestServer(stubSource{result: ports.FetchResult{Table: sampleTable}}, &stubSink{})
}

func failingServer() *Server {
	return newTestServer(stubSource{result: ports.FetchFailed(ports.FailureStatus, 500, "boom")}, &stubSink{})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, liveServer(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	liveServer().Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsAssigned(t *testing.T) {
	w := do(t, liveServer(), http.MethodGet, "/health", "")

	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRespondErrorHidesPlainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, io.ErrUnexpectedEOF)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal error","code":"INTERNAL_ERROR"}`, w.Body.String())
}

func TestChartData(t *testing.T) {
	w := do(t, liveServer(), http.MethodGet, "/api/chart-data", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "live", w.Header().Get(TallySourceHeader))
	assert.JSONEq(t, `{"totalResponses":2,"dimensions":{"adaptation":{"yes":3,"no":1},`+
		`"goal":{"yes":0,"no":0},"integration":{"yes":0,"no":0},"latency":{"yes":1,"no":0}}}`, w.Body.String())
}

func TestChartDataFallsBackToZero(t *testing.T) {
	w := do(t, failingServer(), http.MethodGet, "/api/chart-data", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "empty", w.Header().Get(TallySourceHeader))

	var result survey.AggregateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Equal(survey.ZeroAggregate()))
	assert.Len(t, result.Dimensions, 4)
}

func TestSummary(t *testing.T) {
	w := do(t, liveServer(), http.MethodGet, "/api/summary", "")

	require.Equal(t, http.StatusOK, w.Code)
	var summary survey.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalResponses)
	require.Len(t, summary.Dimensions, 4)
	assert.InDelta(t, 0.75, summary.Dimensions[0].YesRate, 1e-9)
}

func TestChartPNG(t *testing.T) {
	w := do(t, failingServer(), http.MethodGet, "/api/chart.png", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestReport(t *testing.T) {
	w := do(t, liveServer(), http.MethodGet, "/report?title=Rekap", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<title>Rekap</title>")
	assert.Contains(t, w.Body.String(), "<td>adaptation</td>")
}

func TestReportEscapesTitle(t *testing.T) {
	w := do(t, liveServer(), http.MethodGet, "/report?title=%3Cscript%3Ealert(1)%3C%2Fscript%3E", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		expected string
	}{
		{"table", `[["G1","G2"],["Ya","Tidak"],["Tidak"]]`, http.StatusOK,
			`{"totalResponses":2,"dimensions":{"adaptation":{"yes":0,"no":0},"goal":{"yes":1,"no":2},` +
				`"integration":{"yes":0,"no":0},"latency":{"yes":0,"no":0}}}`},
		{"empty array", `[]`, http.StatusOK,
			`{"totalResponses":0,"dimensions":{"adaptation":{"yes":0,"no":0},"goal":{"yes":0,"no":0},` +
				`"integration":{"yes":0,"no":0},"latency":{"yes":0,"no":0}}}`},
		{"object", `{"rows":[]}`, http.StatusBadRequest, ""},
		{"numeric cells", `[["A1"],[1]]`, http.StatusBadRequest, ""},
		{"null", `null`, http.StatusBadRequest, ""},
		{"not json", `nope`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, liveServer(), http.MethodPost, "/api/aggregate", tt.body)

			require.Equal(t, tt.status, w.Code)
			if tt.expected != "" {
				assert.JSONEq(t, tt.expected, w.Body.String())
				return
			}
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, "INVALID_INPUT", resp.Code)
		})
	}
}

func TestSubmit(t *testing.T) {
	sink := &stubSink{result: ports.SubmitResult{Success: true, StatusCode: http.StatusOK}}
	server := newTestServer(stubSource{}, sink)

	w := do(t, server, http.MethodPost, "/api/submit", `{"nama":"Budi","A1":"Ya"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, sink.received, 1)
	assert.Equal(t, "Ya", sink.received[0]["A1"])
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		sink   ports.SubmitResult
		body   string
		status int
		code   string
	}{
		{"missing required", ports.SubmitResult{Success: true}, `{"A1":"Ya"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"blank required", ports.SubmitResult{Success: true}, `{"nama":"   "}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad body", ports.SubmitResult{Success: true}, `["nama"]`, http.StatusBadRequest, "INVALID_INPUT"},
		{"sheet rejects", ports.SubmitResult{StatusCode: 500, Reason: "status 500"}, `{"nama":"Budi"}`,
			http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(stubSource{}, &stubSink{result: tt.sink})

			w := do(t, server, http.MethodPost, "/api/submit", tt.body)

			require.Equal(t, tt.status, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, liveServer(), http.MethodOptions, "/api/submit", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
