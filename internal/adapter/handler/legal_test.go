package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/legalmind/errors"
	"github.com/johnquangdev/legalmind/internal/adapter/repository"
	legalUsecase "github.com/johnquangdev/legalmind/internal/usecase/legal"
	"github.com/johnquangdev/legalmind/pkg/ai"
	"github.com/johnquangdev/legalmind/pkg/config"
	pkgvalidator "github.com/johnquangdev/legalmind/pkg/validator"
)

type envelope struct {
	Code    float64           `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

type listData struct {
	Items []map[string]interface{} `json:"items"`
	Total int                      `json:"total"`
}

type fakeArchive struct {
	urls map[string]string
	err  error
}

func (f fakeArchive) ArchiveURLs(context.Context, string, time.Duration) (map[string]string, error) {
	return f.urls, f.err
}

func newTestServer(t *testing.T, archive ArchiveLinker, zoom *Zoom) *echo.Echo {
	t.Helper()

	repo := repository.NewTaskRepository()
	completer := ai.CompleterFunc{
		Name: "gpt-test",
		Fn: func(context.Context, string) (string, error) {
			return `{"key_issues": [], "action_items": ["Review the NDA"], "summary": "ok"}`, nil
		},
	}
	svc := legalUsecase.NewService(legalUsecase.ServiceDeps{
		Repo:         repo,
		Pipeline:     legalUsecase.NewPipeline(completer, false, nil, nil),
		Materializer: legalUsecase.NewMaterializer(repo, nil, nil),
	})

	e := echo.New()
	e.Validator = pkgvalidator.New()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, RouterDeps{Legal: NewLegalHandler(svc, archive, nil), Zoom: zoom}).Setup(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decodeList(t *testing.T, env envelope) listData {
	t.Helper()
	var list listData
	require.NoError(t, json.Unmarshal(env.Data, &list))
	return list
}

func TestLegal_Domains(t *testing.T) {
	e := newTestServer(t, nil, nil)

	rec, env := do(t, e, http.MethodGet, "/v1/domains", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var domains []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &domains))
	require.Len(t, domains, 5)
	assert.Equal(t, config.DomainCompliance, domains[0]["key"])
}

func TestLegal_DemoDashboardFlow(t *testing.T) {
	e := newTestServer(t, nil, nil)

	rec, _ := do(t, e, http.MethodPost, "/v1/demo", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// a second load is rejected and leaves the records untouched
	rec, env := do(t, e, http.MethodPost, "/v1/demo", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, float64(errors.ErrorCode_MEETING_EXISTS), env.Code)
	_, env = do(t, e, http.MethodGet, "/v1/meetings", "")
	assert.Equal(t, 1, decodeList(t, env).Total)

	rec, env = do(t, e, http.MethodGet, "/v1/actions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, decodeList(t, env).Total)

	rec, _ = do(t, e, http.MethodPatch, "/v1/actions/act-demo_meeting_1-compliance-0/status", `{"status":"completed","assignee":"dana"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// completed actions drop out of the default open view
	_, env = do(t, e, http.MethodGet, "/v1/actions", "")
	assert.Equal(t, 5, decodeList(t, env).Total)
	_, env = do(t, e, http.MethodGet, "/v1/actions?status=all", "")
	assert.Equal(t, 6, decodeList(t, env).Total)
	_, env = do(t, e, http.MethodGet, "/v1/actions?status=completed", "")
	assert.Equal(t, 1, decodeList(t, env).Total)
	_, env = do(t, e, http.MethodGet, "/v1/actions?domain=contracts,compliance&status=pending", "")
	assert.Equal(t, 5, decodeList(t, env).Total)

	_, env = do(t, e, http.MethodGet, "/v1/insights?importance=high&sort=newest", "")
	for _, item := range decodeList(t, env).Items {
		assert.Equal(t, "high", item["importance"])
	}

	rec, env = do(t, e, http.MethodGet, "/v1/meetings/"+legalUsecase.DemoMeetingID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Len(t, details["actions"], 6)

	rec, env = do(t, e, http.MethodGet, "/v1/dashboard/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"total_actions":6`)

	rec, _ = do(t, e, http.MethodDelete, "/v1/data", "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, env = do(t, e, http.MethodGet, "/v1/meetings", "")
	assert.Zero(t, decodeList(t, env).Total)
}

func TestLegal_ErrorMapping(t *testing.T) {
	e := newTestServer(t, nil, nil)
	do(t, e, http.MethodPost, "/v1/demo", "")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   errors.ErrorCode
	}{
		{"unknown meeting", http.MethodGet, "/v1/meetings/meeting_nope", "", http.StatusNotFound, errors.ErrorCode_MEETING_NOT_FOUND},
		{"unknown action", http.MethodGet, "/v1/actions/act-nope", "", http.StatusNotFound, errors.ErrorCode_ACTION_NOT_FOUND},
		{"unknown insight", http.MethodGet, "/v1/insights/ins-nope", "", http.StatusNotFound, errors.ErrorCode_INSIGHT_NOT_FOUND},
		{"unknown domain filter", http.MethodGet, "/v1/actions?domain=tax", "", http.StatusBadRequest, errors.ErrorCode_UNKNOWN_DOMAIN},
		{"unknown priority filter", http.MethodGet, "/v1/actions?priority=urgent", "", http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"unknown sort", http.MethodGet, "/v1/insights?sort=random", "", http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"invalid status", http.MethodPatch, "/v1/actions/act-demo_meeting_1-compliance-0/status", `{"status":"done"}`, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"status of missing action", http.MethodPatch, "/v1/actions/act-nope/status", `{"status":"completed"}`, http.StatusNotFound, errors.ErrorCode_ACTION_NOT_FOUND},
		{"malformed body", http.MethodPost, "/v1/transcripts/analyze", `{"transcript":`, http.StatusBadRequest, errors.ErrorCode_INVALID_PAYLOAD},
		{"empty transcript", http.MethodPost, "/v1/transcripts/analyze", `{"transcript":[]}`, http.StatusUnprocessableEntity, errors.ErrorCode_TRANSCRIPT_EMPTY},
		{"missing meeting link", http.MethodPost, "/v1/bots", `{}`, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"bots not configured", http.MethodPost, "/v1/bots", `{"meeting_link":"https://zoom.us/j/1"}`, http.StatusServiceUnavailable, errors.ErrorCode_AI_SERVICE_UNAVAILABLE},
		{"transcriber not configured", http.MethodPost, "/v1/recordings/transcribe", `{"audio_url":"https://cdn.example/a.mp3"}`, http.StatusServiceUnavailable, errors.ErrorCode_AI_SERVICE_UNAVAILABLE},
		{"archive disabled", http.MethodGet, "/v1/meetings/demo_meeting_1/archive", "", http.StatusServiceUnavailable, errors.ErrorCode_AI_SERVICE_UNAVAILABLE},
		{"demo loaded twice", http.MethodPost, "/v1/demo", "", http.StatusConflict, errors.ErrorCode_MEETING_EXISTS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, e, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, float64(tt.code), env.Code)
		})
	}
}

func TestLegal_ValidationDetailsNameFields(t *testing.T) {
	e := newTestServer(t, nil, nil)

	rec, env := do(t, e, http.MethodPost, "/v1/bots", `{"meeting_link":"not a link"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
	assert.Equal(t, map[string]string{"meeting_link": "url"}, env.Details)

	rec, env = do(t, e, http.MethodPatch, "/v1/actions/act-nope/status", `{"status":"done"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "oneof=pending in_progress completed cancelled", env.Details["status"])
}

func TestLegal_AnalyzeTranscript(t *testing.T) {
	e := newTestServer(t, nil, nil)

	body := `{"title":"NDA review","transcript":[{"speaker":"Alice","timestamp":"00:05","text":"Please review the NDA."}]}`
	rec, env := do(t, e, http.MethodPost, "/v1/transcripts/analyze", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var out struct {
		MeetingID string   `json:"meeting_id"`
		Title     string   `json:"title"`
		ActionIDs []string `json:"action_ids"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Regexp(t, `^meeting_[0-9a-f]{8}$`, out.MeetingID)
	assert.Equal(t, "NDA review", out.Title)
	assert.Len(t, out.ActionIDs, len(config.LegalDomains()))

	rec, env = do(t, e, http.MethodGet, "/v1/actions?meeting_id="+out.MeetingID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, len(config.LegalDomains()), decodeList(t, env).Total)
}

func TestLegal_MeetingArchive(t *testing.T) {
	urls := map[string]string{"analysis.json": "https://minio.local/analysis.json"}
	e := newTestServer(t, fakeArchive{urls: urls}, nil)
	do(t, e, http.MethodPost, "/v1/demo", "")

	rec, env := do(t, e, http.MethodGet, "/v1/meetings/demo_meeting_1/archive", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analysis.json":"https://minio.local/analysis.json"}`, string(env.Data))

	rec, env = do(t, e, http.MethodGet, "/v1/meetings/demo_meeting_1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"archive":{"analysis.json"`)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, nil, nil)

	rec, _ := do(t, e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSplitMulti(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitMulti([]string{"a, b", "", "c,"}))
	assert.Empty(t, splitMulti(nil))
}
