package crm

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"crm_bridge/browser"
	"crm_bridge/logging"
	"crm_bridge/mapping"
)

const PushSuccessMessage = "Property pushed. Please check CRM for confirmation."

// PushResult is what a property push produced.
type PushResult struct {
	Message  string
	Warnings []string
	State    State
}

// Submitter writes canonical records into the legacy CRM's create form.
type Submitter struct {
	session  browser.Session
	uploader *Uploader
	forms    FormFactory
	fields   []mapping.Descriptor
}

func NewSubmitter(session browser.Session, uploader *Uploader) *Submitter {
	return &Submitter{
		session:  session,
		uploader: uploader,
		forms:    NewForm,
		fields:   mapping.PropertyFields,
	}
}

// Push creates rec in the legacy CRM and uploads images. Controls that cannot
// be filled are logged and left untouched; upload and submit failures abort.
// The session is always closed.
func (s *Submitter) Push(ctx context.Context, tenant Tenant, rec mapping.Record, images []string) (*PushResult, error) {
	t := newTracker("push")
	res := &PushResult{}
	defer func() { res.State = t.state }()
	defer s.session.Close()

	if err := tenant.validate(); err != nil {
		return res, t.fail(err)
	}

	page, err := login(ctx, s.session, t, tenant)
	if err != nil {
		return res, t.fail(err)
	}

	t.enter(StateNavigatingToCreate)
	createURL := tenant.defaultCreateURL()
	if content, err := page.Content(); err == nil {
		if link := CreateLink(content, page.URL()); link != "" {
			createURL = link
		}
	}
	log.Printf("[push] Navigating to %s", createURL)
	if err := page.Goto(createURL, editNavTimeout, false); err != nil {
		return res, t.fail(&NavigationError{URL: createURL, Err: err})
	}

	t.enter(StateFillingFields)
	res.Warnings = fillFields(s.forms(page), s.fields, rec)

	if err := ctx.Err(); err != nil {
		return res, t.fail(err)
	}

	if len(images) > 0 {
		t.enter(StateUploadingMedia)
		warnings, err := s.uploader.Upload(ctx, page, images)
		res.Warnings = append(res.Warnings, warnings...)
		if err != nil {
			return res, t.fail(err)
		}
	}

	t.enter(StateSubmitting)
	navErr := page.WaitForNavigation(submitNavTimeout, func() error { return submitForm(page) })

	t.enter(StateVerifyingResult)
	if navErr != nil {
		log.Printf("[push] No navigation after submit (%v), checking page state", navErr)
		content, err := page.Content()
		if err != nil {
			return res, t.fail(&NavigationError{URL: page.URL(), Err: err})
		}
		if err := VerifySubmit(page.URL(), content); err != nil {
			return res, t.fail(err)
		}
	}

	t.enter(StateDone)
	res.Message = PushSuccessMessage
	return res, nil
}

// fillFields writes every push-able descriptor with a value in rec, switching
// tabs lazily. It returns warnings for controls it could not set.
func fillFields(form Form, fields []mapping.Descriptor, rec mapping.Record) []string {
	var warnings []string
	cursor := &tabCursor{form: form}

	for _, d := range fields {
		if d.PullOnly {
			continue
		}

		values, err := d.Encode(rec)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Could not encode %s: %v", d.Field, err))
			continue
		}
		if len(values) == 0 {
			continue
		}

		if err := cursor.enter(d.Tab); err != nil {
			log.Printf("[push] %v", err)
		}

		logging.Debugf("[push] %s <- %v", d.Field, values)
		if err := fillControl(form, d, values); err != nil {
			log.Printf("[push] Error filling %s: %v", d.Field, err)
			warnings = append(warnings, fmt.Sprintf("Could not fill %s: %v", d.Field, err))
		}
	}
	return warnings
}

func fillControl(form Form, d mapping.Descriptor, values []string) error {
	switch d.Kind {
	case mapping.KindSelect:
		options, err := form.Options(d.Locator)
		if err != nil {
			return err
		}
		opt, ok := mapping.MatchOption(options, values)
		if !ok {
			log.Printf("[push] No option of %s matched %v, leaving unchanged", d.Locator, values)
			return nil
		}
		return form.Select(d.Locator, opt.Value)

	case mapping.KindMultiSelect:
		options, err := form.Options(d.Locator)
		if err != nil {
			return err
		}
		var picked []string
		for _, v := range values {
			if opt, ok := mapping.MatchOption(options, []string{v}); ok {
				picked = append(picked, opt.Value)
			}
		}
		if len(picked) == 0 {
			return nil
		}
		return form.SelectMany(d.Locator, picked)

	case mapping.KindCheckboxGroup:
		boxes, err := form.Checkboxes(d.Locator)
		if err != nil {
			return err
		}
		for _, idx := range mapping.MatchCheckboxes(boxes, values) {
			if err := form.Check(d.Locator, idx); err != nil {
				return err
			}
		}
		return nil

	case mapping.KindCheckbox:
		return form.SetChecked(d.Locator, values[0] == "1")

	case mapping.KindRichText:
		return form.SetRichText(d.Locator, values[0])

	default:
		return form.SetValue(d.Locator, values[0])
	}
}

var createLinkMarkers = []string{"add property", "new property", "create"}

// CreateLink finds the "add property" anchor on the current page.
func CreateLink(html, pageURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	base, _ := url.Parse(pageURL)

	var link string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(a.Text())
		for _, marker := range createLinkMarkers {
			if !strings.Contains(text, marker) {
				continue
			}
			href, _ := a.Attr("href")
			if base != nil {
				if ref, err := url.Parse(href); err == nil {
					href = base.ResolveReference(ref).String()
				}
			}
			link = href
			return false
		}
		return true
	})
	return link
}
