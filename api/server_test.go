package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_bridge/bridge"
	"crm_bridge/mapping"
	"crm_bridge/models"
	"crm_bridge/storage"
	"crm_bridge/workers"
)

type fakeBridge struct {
	pulls []string
}

func (f *fakeBridge) PullProperty(_ context.Context, tenantID, legacyID string) *bridge.PullResponse {
	f.pulls = append(f.pulls, tenantID+"/"+legacyID)
	if legacyID == "404" {
		return &bridge.PullResponse{Error: "Property \"404\" was not found", NotFound: true}
	}
	return &bridge.PullResponse{Success: true, Data: mapping.Record{"title": "Villa"}, Warnings: []string{"w1"}}
}

func (f *fakeBridge) PushProperty(_ context.Context, _, _ string) *bridge.PushResponse {
	return &bridge.PushResponse{Error: "CRM validation errors: Price is required"}
}

func (f *fakeBridge) PreviewLead(_ context.Context, _, _ string) *bridge.LeadPreview {
	return &bridge.LeadPreview{Success: true, Data: mapping.Record{"name": "John"}}
}

func (f *fakeBridge) ImportLead(_ context.Context, _, _ string) *bridge.LeadImport {
	return &bridge.LeadImport{Success: true, Action: "created", ID: "abc"}
}

func (f *fakeBridge) RetryMedia(context.Context) (workers.RetryResult, error) {
	return workers.RetryResult{Attempted: 2, Migrated: 2}, nil
}

func (f *fakeBridge) TenantIDs() []string { return []string{"acme"} }

func newTestServer(t *testing.T) (*Server, *fakeBridge, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	fb := &fakeBridge{}
	return NewServer(fb, store), fb, store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestPullEndpoint(t *testing.T) {
	s, fb, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/tenants/acme/properties/1042/pull", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp bridge.PullResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Villa", resp.Data["title"])
	assert.Equal(t, []string{"acme/1042"}, fb.pulls)

	rec = do(t, s, http.MethodPost, "/api/tenants/acme/properties/404/pull", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notFound":true`)
}

func TestPushFailureIsUnprocessable(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/tenants/acme/properties/abc/push", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price is required")
}

func TestLeadEndpoints(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/tenants/acme/leads/77/preview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isDuplicate":false`)

	rec = do(t, s, http.MethodPost, "/api/tenants/acme/leads/77/import", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"action":"created"`)
}

func TestEnqueueCommand(t *testing.T) {
	s, _, store := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/commands", `{"command":"pull_property","params":{"tenant":"acme","legacy_id":"5"}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	cmds, err := store.GetPendingCommands()
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, models.CmdPullProperty, cmds[0].Command)

	rec = do(t, s, http.MethodPost, "/api/commands", `{"command":"push_property","params":{"tenant":"acme"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/commands", `{"command":"drop_tables"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/commands", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunsEndpoints(t *testing.T) {
	s, _, store := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	id, err := store.CreateRun(&models.MigrationRun{
		TenantID: "acme", Operation: models.OpPushProperty, Target: "x",
		StartedAt: time.Now(), Status: models.RunStatusRunning,
	})
	require.NoError(t, err)
	require.NoError(t, store.Log(&id, models.LogLevelInfo, "Starting push", "acme"))

	rec = do(t, s, http.MethodGet, "/api/runs?tenant=acme&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []models.MigrationRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)

	rec = do(t, s, http.MethodGet, "/api/runs/"+strconv.FormatInt(id, 10), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Starting push")

	rec = do(t, s, http.MethodGet, "/api/runs/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/runs?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMiscEndpoints(t *testing.T) {
	s, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)

	rec := do(t, s, http.MethodGet, "/api/tenants", "")
	assert.JSONEq(t, `{"tenants":["acme"]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/media/retry", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"migrated":2`)
}
