package crm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"crm_bridge/browser"
	"crm_bridge/logging"
	"crm_bridge/mapping"
	"crm_bridge/models"
)

const (
	editNavTimeout = 60 * time.Second
	leadNavTimeout = 30 * time.Second
)

// Linker resolves the related entities named in an extracted record.
type Linker interface {
	LinkOwner(ctx context.Context, tenantID string, rec mapping.Record) (*uuid.UUID, error)
	LinkProject(ctx context.Context, tenantID string, rec mapping.Record) (*uuid.UUID, error)
}

// Migrator re-hosts images, returning one asset per URL in input order along
// with per-image warnings.
type Migrator interface {
	Migrate(ctx context.Context, urls []string) ([]models.MediaAsset, []string)
}

// ExtractionResult is what a property pull produced.
type ExtractionResult struct {
	LegacyID  string
	Data      mapping.Record
	Warnings  []string
	OwnerID   *uuid.UUID
	ProjectID *uuid.UUID
	Media     []models.MediaAsset
	State     State
}

// Extractor pulls records out of the legacy CRM's edit views.
type Extractor struct {
	session    browser.Session
	linker     Linker
	media      Migrator
	forms      FormFactory
	fields     []mapping.Descriptor
	leadFields []mapping.Descriptor
	now        func() time.Time
}

func NewExtractor(session browser.Session, linker Linker, media Migrator) *Extractor {
	return &Extractor{
		session:    session,
		linker:     linker,
		media:      media,
		forms:      NewForm,
		fields:     mapping.PropertyFields,
		leadFields: mapping.LeadFields,
		now:        time.Now,
	}
}

// login brings the session up and signs in. The caller closes the session.
func login(ctx context.Context, session browser.Session, t *tracker, tenant Tenant) (browser.Page, error) {
	t.enter(StateLoggingIn)
	if err := session.EnsureReady(ctx); err != nil {
		return nil, &NavigationError{URL: tenant.Credentials.BaseURL, Err: err}
	}
	creds := tenant.Credentials
	if err := session.Login(ctx, creds.BaseURL, creds.Username, creds.Password); err != nil {
		return nil, &NavigationError{URL: creds.BaseURL, Err: fmt.Errorf("login: %w", err)}
	}
	page, err := session.Page(ctx)
	if err != nil {
		return nil, &NavigationError{URL: creds.BaseURL, Err: err}
	}
	return page, nil
}

// Pull extracts legacy property legacyID. Field problems become warnings;
// login, navigation and not-found abort. The session is always closed.
func (e *Extractor) Pull(ctx context.Context, tenant Tenant, legacyID string) (*ExtractionResult, error) {
	t := newTracker("pull")
	res := &ExtractionResult{LegacyID: legacyID, Data: mapping.Record{}}
	defer func() { res.State = t.state }()
	defer e.session.Close()

	log.Printf("[pull] Starting for legacy property %s (tenant %s)", legacyID, tenant.ID)

	if err := tenant.validate(); err != nil {
		return res, t.fail(err)
	}

	page, err := login(ctx, e.session, t, tenant)
	if err != nil {
		return res, t.fail(err)
	}

	t.enter(StateNavigatingToEdit)
	editURL := tenant.propertyEditURL(legacyID)
	log.Printf("[pull] Navigating to %s", editURL)
	if err := page.Goto(editURL, editNavTimeout, true); err != nil {
		return res, t.fail(&NavigationError{URL: editURL, Err: err})
	}

	t.enter(StateValidatingExistence)
	form := e.forms(page)
	if err := validateExistence(form, page, legacyID); err != nil {
		return res, t.fail(err)
	}

	t.enter(StateExtractingFields)
	res.Warnings = append(res.Warnings, extractFields(form, e.fields, res.Data)...)

	if err := ctx.Err(); err != nil {
		return res, t.fail(err)
	}

	t.enter(StateResolvingRelatedEntities)
	res.OwnerID, res.ProjectID, res.Warnings = e.linkRelated(ctx, tenant.ID, res.Data, res.Warnings)

	t.enter(StateMigratingMedia)
	content, err := page.Content()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Could not read images: %v", err))
	} else if urls := ImageURLs(content, page.URL()); len(urls) > 0 {
		log.Printf("[pull] Migrating %d images", len(urls))
		assets, warnings := e.media.Migrate(ctx, urls)
		res.Media = assets
		res.Warnings = append(res.Warnings, warnings...)
	}

	t.enter(StateDone)
	log.Printf("[pull] Done: %d fields, %d warnings, %d images", len(res.Data), len(res.Warnings), len(res.Media))
	return res, nil
}

// validateExistence reads the identity controls. All empty means the CRM
// served a blank create form, its way of saying the record does not exist.
func validateExistence(form Form, page browser.Page, legacyID string) error {
	identity := []mapping.Descriptor{
		{Field: "id", Locator: mapping.LocatorHiddenID, Kind: mapping.KindText},
		{Field: "reference", Locator: mapping.LocatorReference, Kind: mapping.KindText},
		{Field: "title", Locator: mapping.LocatorTitle, Kind: mapping.KindText},
	}

	for _, d := range identity {
		raw, found, err := form.Read(d)
		if err != nil {
			return &NavigationError{URL: page.URL(), Err: fmt.Errorf("read %s: %w", d.Field, err)}
		}
		if found && strings.TrimSpace(raw.Value) != "" {
			if !strings.Contains(page.URL(), legacyID) {
				return &NavigationError{URL: page.URL(), Err: fmt.Errorf("redirected away from property %s", legacyID)}
			}
			return nil
		}
	}

	log.Printf("[pull] Property %s does not exist in the old CRM", legacyID)
	return &NotFoundError{Kind: "Property", LegacyID: legacyID, URL: page.URL()}
}

// extractFields walks fields in order, switching tabs lazily, and stores every
// non-empty value into rec. It returns the accumulated warnings.
func extractFields(form Form, fields []mapping.Descriptor, rec mapping.Record) []string {
	var warnings []string
	cursor := &tabCursor{form: form}

	for _, d := range fields {
		if d.PushOnly {
			continue
		}
		if err := cursor.enter(d.Tab); err != nil {
			log.Printf("[pull] %v", err)
		}

		raw, found, err := form.Read(d)
		if err != nil {
			warnings = append(warnings, (&ExtractionWarning{Field: d.Field, Err: err}).Error())
			continue
		}
		if !found || raw.Empty(d.Kind) {
			continue
		}

		value, err := d.Extract(raw, rec)
		var mw *mapping.MappingWarning
		switch {
		case errors.Is(err, mapping.ErrNoValue):
			continue
		case errors.As(err, &mw):
			warnings = append(warnings, mw.Error())
			continue
		case err != nil:
			warnings = append(warnings, (&ExtractionWarning{Field: d.Field, Err: err}).Error())
			continue
		}
		logging.Debugf("[pull] %s = %v", d.Field, value)
		rec[d.Field] = value
	}
	return warnings
}

func (e *Extractor) linkRelated(ctx context.Context, tenantID string, rec mapping.Record, warnings []string) (*uuid.UUID, *uuid.UUID, []string) {
	if e.linker == nil {
		return nil, nil, warnings
	}

	ownerID, err := e.linker.LinkOwner(ctx, tenantID, rec)
	if err != nil {
		log.Printf("[pull] Owner linking failed: %v", err)
		warnings = append(warnings, fmt.Sprintf("Owner linking failed: %v", err))
	} else if ownerID != nil {
		rec["ownerContactId"] = ownerID.String()
	}

	projectID, err := e.linker.LinkProject(ctx, tenantID, rec)
	if err != nil {
		log.Printf("[pull] Project linking failed: %v", err)
		warnings = append(warnings, fmt.Sprintf("Project linking failed: %v", err))
	} else if projectID != nil {
		rec["projectId"] = projectID.String()
	}

	return ownerID, projectID, warnings
}

// ImageURLs lists the full-size image sources on the images tab, resolved
// against pageURL. Inline data URIs are skipped.
func ImageURLs(html, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, _ := url.Parse(pageURL)

	var urls []string
	doc.Find("#tab_images img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		if base != nil {
			if ref, err := url.Parse(src); err == nil {
				src = base.ResolveReference(ref).String()
			}
		}
		urls = append(urls, strings.Replace(src, "_thumb", "_full", 1))
	})
	return urls
}
