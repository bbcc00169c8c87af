package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"crm_bridge/bridge"
	"crm_bridge/models"
	"crm_bridge/storage"
	"crm_bridge/workers"
)

const defaultRunLimit = 50

// Bridge is the migration surface the API exposes.
type Bridge interface {
	PullProperty(ctx context.Context, tenantID, legacyID string) *bridge.PullResponse
	PushProperty(ctx context.Context, tenantID, propertyID string) *bridge.PushResponse
	PreviewLead(ctx context.Context, tenantID, legacyID string) *bridge.LeadPreview
	ImportLead(ctx context.Context, tenantID, legacyID string) *bridge.LeadImport
	RetryMedia(ctx context.Context) (workers.RetryResult, error)
	TenantIDs() []string
}

// Server is the operator HTTP API.
type Server struct {
	bridge Bridge
	store  *storage.SQLiteStore
	router *mux.Router
}

func NewServer(b Bridge, store *storage.SQLiteStore) *Server {
	s := &Server{bridge: b, store: store, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tenants", s.handleTenants).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{tenant}/properties/{legacyID}/pull", s.handlePull).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{tenant}/properties/{propertyID}/push", s.handlePush).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{tenant}/leads/{legacyID}/preview", s.handlePreviewLead).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{tenant}/leads/{legacyID}/import", s.handleImportLead).Methods(http.MethodPost)
	api.HandleFunc("/media/retry", s.handleRetryMedia).Methods(http.MethodPost)
	api.HandleFunc("/runs", s.handleRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id:[0-9]+}", s.handleRun).Methods(http.MethodGet)
	api.HandleFunc("/commands", s.handleEnqueue).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("API listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTenants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tenants": s.bridge.TenantIDs()})
}

func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp := s.bridge.PullProperty(r.Context(), vars["tenant"], vars["legacyID"])
	writeJSON(w, statusFor(resp.Success, resp.NotFound), resp)
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp := s.bridge.PushProperty(r.Context(), vars["tenant"], vars["propertyID"])
	writeJSON(w, statusFor(resp.Success, false), resp)
}

func (s *Server) handlePreviewLead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp := s.bridge.PreviewLead(r.Context(), vars["tenant"], vars["legacyID"])
	writeJSON(w, statusFor(resp.Success, resp.NotFound), resp)
}

func (s *Server) handleImportLead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp := s.bridge.ImportLead(r.Context(), vars["tenant"], vars["legacyID"])
	writeJSON(w, statusFor(resp.Success, resp.NotFound), resp)
}

func (s *Server) handleRetryMedia(w http.ResponseWriter, r *http.Request) {
	res, err := s.bridge.RetryMedia(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.store.RecentRuns(r.URL.Query().Get("tenant"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []models.MigrationRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	run, err := s.store.GetRun(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	logs, err := s.store.RunLogs(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"run": run, "logs": logs})
}

type enqueueRequest struct {
	Command models.CommandType   `json:"command"`
	Params  models.CommandParams `json:"params"`
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	switch req.Command {
	case models.CmdPullProperty, models.CmdImportLead:
		if req.Params.Tenant == "" || req.Params.LegacyID == "" {
			writeError(w, http.StatusBadRequest, "tenant and legacy_id are required")
			return
		}
	case models.CmdPushProperty:
		if req.Params.Tenant == "" || req.Params.PropertyID == "" {
			writeError(w, http.StatusBadRequest, "tenant and property_id are required")
			return
		}
	case models.CmdRetryMedia:
	default:
		writeError(w, http.StatusBadRequest, "unknown command")
		return
	}

	id, err := s.store.EnqueueCommand(req.Command, req.Params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int64{"id": id})
}

func statusFor(success, notFound bool) int {
	switch {
	case success:
		return http.StatusOK
	case notFound:
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("API: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}
