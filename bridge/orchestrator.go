package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"crm_bridge/browser"
	"crm_bridge/config"
	"crm_bridge/crm"
	"crm_bridge/mapping"
	"crm_bridge/models"
	"crm_bridge/services"
	"crm_bridge/storage"
	"crm_bridge/workers"
)

var errNoCanonicalStore = errors.New("canonical store not configured")

// Orchestrator runs migrations one at a time against the shared browser
// session and records each run in the operational store.
type Orchestrator struct {
	cfg       *config.Config
	store     *storage.SQLiteStore
	session   browser.Session
	media     crm.Migrator
	extractor *crm.Extractor
	submitter *crm.Submitter

	properties *services.PropertyService
	leads      *services.LeadService
	retry      *workers.MediaRetryWorker

	mu sync.Mutex
}

func NewOrchestrator(cfg *config.Config, store *storage.SQLiteStore, session browser.Session, media crm.Migrator, uploader *crm.Uploader) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		store:     store,
		session:   session,
		media:     media,
		extractor: crm.NewExtractor(session, nil, media),
		submitter: crm.NewSubmitter(session, uploader),
	}
}

// SetServices injects the Postgres-backed services. Without them pulls
// return data without storing it, and push and lead import are unavailable.
func (o *Orchestrator) SetServices(
	linker *services.Linker,
	properties *services.PropertyService,
	leads *services.LeadService,
	retry *workers.MediaRetryWorker,
) {
	if linker != nil {
		o.extractor = crm.NewExtractor(o.session, linker, o.media)
	}
	o.properties = properties
	o.leads = leads
	o.retry = retry
	if retry != nil {
		retry.SetLogFunc(func(level models.LogLevel, tenantID, message string) {
			o.store.Log(nil, level, message, tenantID)
		})
	}
}

// TenantIDs lists the configured tenants.
func (o *Orchestrator) TenantIDs() []string {
	var ids []string
	for id := range o.cfg.Tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (o *Orchestrator) tenant(id string) (crm.Tenant, error) {
	tc, ok := o.cfg.Tenant(id)
	if !ok {
		return crm.Tenant{}, &crm.ConfigurationError{Tenant: id, Reason: "unknown tenant"}
	}
	return crm.Tenant{
		ID: tc.ID,
		Credentials: models.Credentials{
			BaseURL:  tc.CRMURL,
			Username: tc.Username,
			Password: tc.Password,
		},
		EditURLPattern:     tc.EditURLPattern,
		LeadEditURLPattern: tc.LeadEditURLPattern,
		CreateURL:          tc.CreateURL,
	}, nil
}

// =============================================================================
// Responses
// =============================================================================

type PullResponse struct {
	Success    bool                `json:"success"`
	Data       mapping.Record      `json:"data,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
	PropertyID string              `json:"propertyId,omitempty"`
	Media      []models.MediaAsset `json:"media,omitempty"`
	Error      string              `json:"error,omitempty"`
	NotFound   bool                `json:"notFound,omitempty"`
}

type PushResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type LeadPreview struct {
	Success     bool           `json:"success"`
	Data        mapping.Record `json:"data,omitempty"`
	DuplicateOf *uuid.UUID     `json:"duplicateOf,omitempty"`
	IsDuplicate bool           `json:"isDuplicate"`
	Warnings    []string       `json:"warnings,omitempty"`
	Error       string         `json:"error,omitempty"`
	NotFound    bool           `json:"notFound,omitempty"`
}

type LeadImport struct {
	Success  bool     `json:"success"`
	Action   string   `json:"action,omitempty"`
	ID       string   `json:"id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
	NotFound bool     `json:"notFound,omitempty"`
}

// =============================================================================
// Operations
// =============================================================================

// PullProperty extracts a legacy property and, when the canonical store is
// configured, saves it.
func (o *Orchestrator) PullProperty(ctx context.Context, tenantID, legacyID string) *PullResponse {
	o.mu.Lock()
	defer o.mu.Unlock()

	run := o.beginRun(tenantID, models.OpPullProperty, legacyID)
	resp := &PullResponse{}

	err := func() error {
		tenant, err := o.tenant(tenantID)
		if err != nil {
			return err
		}
		res, err := o.extractor.Pull(ctx, tenant, legacyID)
		resp.Warnings = res.Warnings
		if err != nil {
			return err
		}
		resp.Data = res.Data
		resp.Media = res.Media

		if o.properties != nil {
			saved, err := o.properties.SavePulled(ctx, tenantID, legacyID, res.Data, res.Media)
			if err != nil {
				return err
			}
			resp.PropertyID = saved.PropertyID.String()
		}
		return nil
	}()

	o.finishRun(run, resp.Warnings, err)
	if err != nil {
		resp.Error = err.Error()
		resp.NotFound = crm.IsNotFound(err)
		return resp
	}
	resp.Success = true
	return resp
}

// PushProperty writes a canonical property into the legacy CRM.
func (o *Orchestrator) PushProperty(ctx context.Context, tenantID, propertyID string) *PushResponse {
	o.mu.Lock()
	defer o.mu.Unlock()

	run := o.beginRun(tenantID, models.OpPushProperty, propertyID)
	resp := &PushResponse{}

	err := func() error {
		tenant, err := o.tenant(tenantID)
		if err != nil {
			return err
		}
		if o.properties == nil {
			return errNoCanonicalStore
		}
		id, err := uuid.Parse(propertyID)
		if err != nil {
			return fmt.Errorf("invalid property id %q: %w", propertyID, err)
		}
		rec, images, err := o.properties.LoadForPush(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("property %s not found", propertyID)
		}

		res, err := o.submitter.Push(ctx, tenant, rec, images)
		resp.Warnings = res.Warnings
		if err != nil {
			return err
		}
		resp.Message = res.Message
		return nil
	}()

	o.finishRun(run, resp.Warnings, err)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	return resp
}

// PreviewLead extracts a legacy lead and reports whether it matches an
// existing contact.
func (o *Orchestrator) PreviewLead(ctx context.Context, tenantID, legacyID string) *LeadPreview {
	o.mu.Lock()
	defer o.mu.Unlock()

	run := o.beginRun(tenantID, models.OpPreviewLead, legacyID)
	resp := &LeadPreview{}

	err := func() error {
		lead, err := o.pullLead(ctx, tenantID, legacyID)
		if lead != nil {
			resp.Warnings = lead.Warnings
		}
		if err != nil {
			return err
		}
		resp.Data = lead.Data

		if o.leads != nil {
			dup, err := o.leads.FindDuplicate(ctx, tenantID, lead.Data)
			if err != nil {
				return err
			}
			if dup != nil {
				resp.DuplicateOf = &dup.ID
				resp.IsDuplicate = true
			}
		}
		return nil
	}()

	o.finishRun(run, resp.Warnings, err)
	if err != nil {
		resp.Error = err.Error()
		resp.NotFound = crm.IsNotFound(err)
		return resp
	}
	resp.Success = true
	return resp
}

// ImportLead extracts a legacy lead and creates or merges its contact.
func (o *Orchestrator) ImportLead(ctx context.Context, tenantID, legacyID string) *LeadImport {
	o.mu.Lock()
	defer o.mu.Unlock()

	run := o.beginRun(tenantID, models.OpImportLead, legacyID)
	resp := &LeadImport{}

	err := func() error {
		if o.leads == nil {
			return errNoCanonicalStore
		}
		lead, err := o.pullLead(ctx, tenantID, legacyID)
		if lead != nil {
			resp.Warnings = lead.Warnings
		}
		if err != nil {
			return err
		}
		commit, err := o.leads.Commit(ctx, tenantID, lead.Data)
		if err != nil {
			return err
		}
		resp.Action = commit.Action
		resp.ID = commit.ID.String()
		return nil
	}()

	o.finishRun(run, resp.Warnings, err)
	if err != nil {
		resp.Error = err.Error()
		resp.NotFound = crm.IsNotFound(err)
		return resp
	}
	resp.Success = true
	return resp
}

func (o *Orchestrator) pullLead(ctx context.Context, tenantID, legacyID string) (*crm.LeadExtraction, error) {
	tenant, err := o.tenant(tenantID)
	if err != nil {
		return nil, err
	}
	return o.extractor.PullLead(ctx, tenant, legacyID)
}

// RetryMedia retries one batch of media still served from its source.
func (o *Orchestrator) RetryMedia(ctx context.Context) (workers.RetryResult, error) {
	if o.retry == nil {
		return workers.RetryResult{}, errNoCanonicalStore
	}
	run := o.beginRun("", models.OpRetryMedia, "")
	res, err := o.retry.RetryBatch(ctx, workers.RetryBatchSize)
	run.Warnings = res.Failed
	o.finishRun(run, nil, err)
	return res, err
}

// HandleCommand executes one queued command.
func (o *Orchestrator) HandleCommand(ctx context.Context, cmd *models.Command) error {
	params, err := o.store.ParseCommandParams(cmd)
	if err != nil {
		return err
	}

	switch cmd.Command {
	case models.CmdPullProperty:
		if resp := o.PullProperty(ctx, params.Tenant, params.LegacyID); !resp.Success {
			return errors.New(resp.Error)
		}
	case models.CmdPushProperty:
		if resp := o.PushProperty(ctx, params.Tenant, params.PropertyID); !resp.Success {
			return errors.New(resp.Error)
		}
	case models.CmdImportLead:
		if resp := o.ImportLead(ctx, params.Tenant, params.LegacyID); !resp.Success {
			return errors.New(resp.Error)
		}
	case models.CmdRetryMedia:
		_, err := o.RetryMedia(ctx)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd.Command)
	}
	return nil
}

// =============================================================================
// Run bookkeeping
// =============================================================================

func (o *Orchestrator) beginRun(tenantID string, op models.Operation, target string) *models.MigrationRun {
	run := &models.MigrationRun{
		TenantID:  tenantID,
		Operation: op,
		Target:    target,
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	id, err := o.store.CreateRun(run)
	if err != nil {
		log.Printf("Warning: failed to record run: %v", err)
	}
	run.ID = id
	o.log(run, models.LogLevelInfo, fmt.Sprintf("Starting %s %s", op, target))
	return run
}

func (o *Orchestrator) finishRun(run *models.MigrationRun, warnings []string, err error) {
	for _, w := range warnings {
		o.log(run, models.LogLevelWarn, w)
	}

	now := time.Now()
	run.FinishedAt = &now
	run.Warnings += len(warnings)
	switch {
	case err == nil:
		run.Status = models.RunStatusCompleted
		o.log(run, models.LogLevelInfo, fmt.Sprintf("Completed %s %s with %d warnings", run.Operation, run.Target, run.Warnings))
	case crm.IsNotFound(err):
		run.Status = models.RunStatusNotFound
		run.Error = err.Error()
		o.log(run, models.LogLevelWarn, err.Error())
	default:
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		o.log(run, models.LogLevelError, err.Error())
	}

	if run.ID == 0 {
		return
	}
	if err := o.store.UpdateRun(run); err != nil {
		log.Printf("Warning: failed to update run %d: %v", run.ID, err)
	}
}

func (o *Orchestrator) log(run *models.MigrationRun, level models.LogLevel, message string) {
	log.Printf("[%s] %s: %s", level, run.TenantID, message)
	var runID *int64
	if run.ID != 0 {
		runID = &run.ID
	}
	o.store.Log(runID, level, message, run.TenantID)
}
