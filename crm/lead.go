package crm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"crm_bridge/mapping"
)

const historyMarker = "\n\n--- IMPORTED HISTORY ---\n"

// LeadExtraction is a lead read from the legacy requirement form.
type LeadExtraction struct {
	LegacyID string
	Data     mapping.Record
	Warnings []string
	State    State
}

// PullLead extracts legacy lead legacyID, folding the contact details and the
// history table into the record. The session is always closed.
func (e *Extractor) PullLead(ctx context.Context, tenant Tenant, legacyID string) (*LeadExtraction, error) {
	t := newTracker("lead")
	res := &LeadExtraction{LegacyID: legacyID, Data: mapping.Record{}}
	defer func() { res.State = t.state }()
	defer e.session.Close()

	log.Printf("[lead] Starting for legacy lead %s (tenant %s)", legacyID, tenant.ID)

	if err := tenant.validate(); err != nil {
		return res, t.fail(err)
	}

	page, err := login(ctx, e.session, t, tenant)
	if err != nil {
		return res, t.fail(err)
	}

	t.enter(StateNavigatingToEdit)
	editURL := tenant.leadEditURL(legacyID)
	log.Printf("[lead] Navigating to %s", editURL)
	if err := page.Goto(editURL, leadNavTimeout, false); err != nil {
		return res, t.fail(&NavigationError{URL: editURL, Err: err})
	}

	t.enter(StateValidatingExistence)
	if !strings.Contains(page.URL(), legacyID) {
		return res, t.fail(&NotFoundError{Kind: "Lead", LegacyID: legacyID, URL: page.URL()})
	}

	t.enter(StateExtractingFields)
	form := e.forms(page)
	res.Warnings = extractFields(form, e.leadFields, res.Data)

	contact := mapping.Record{}
	res.Warnings = append(res.Warnings, extractFields(form, mapping.LeadContactFields, contact)...)
	applyLeadContact(res.Data, contact, e.now())

	content, err := page.Content()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Could not read history: %v", err))
	} else if history := HistoryText(content); history != "" {
		res.Data["requirementOtherDetails"] = res.Data.String("requirementOtherDetails") + historyMarker + history
	}

	t.enter(StateDone)
	log.Printf("[lead] Done: %d fields, %d warnings", len(res.Data), len(res.Warnings))
	return res, nil
}

// applyLeadContact combines first and last name and builds the import payload.
func applyLeadContact(data, contact mapping.Record, now time.Time) {
	first := strings.TrimSpace(contact.String("firstName"))
	last := strings.TrimSpace(contact.String("lastName"))
	if name := strings.TrimSpace(first + " " + last); name != "" {
		data["name"] = name
	}

	payload := map[string]any{
		"importedFrom": "Old CRM",
		"importDate":   now.UTC().Format(time.RFC3339),
	}
	for _, key := range []string{"address", "postcode", "nationality", "idPassport"} {
		if v := contact.String(key); v != "" {
			payload[key] = v
		}
	}
	data["payload"] = payload
}

// HistoryText joins the rows of the lead's history table, one per line.
func HistoryText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var rows []string
	doc.Find("#history_table tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			if text := strings.Join(strings.Fields(cell.Text()), " "); text != "" {
				cells = append(cells, text)
			}
		})
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, "\t"))
		}
	})
	return strings.Join(rows, "\n")
}
