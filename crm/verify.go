package crm

import (
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"crm_bridge/browser"
)

const submitNavTimeout = 30 * time.Second

const submitScript = `() => {
	const $ = window.jQuery;
	if ($) { $('#form').submit(); return true; }
	const form = document.getElementById('form');
	if (form) { form.submit(); return true; }
	return false;
}`

// submitForm clicks the save button, or submits the form programmatically.
func submitForm(page browser.Page) error {
	if page.Visible("#submitButton") {
		err := page.Click("#submitButton")
		if err == nil {
			return nil
		}
		log.Printf("[push] Submit click failed, submitting form directly: %v", err)
	}
	_, err := page.Evaluate(submitScript, nil)
	return err
}

// VerifySubmit inspects a page that did not navigate after submit: a listing
// URL or success wording means saved, validation markup means rejected.
func VerifySubmit(pageURL, html string) error {
	lowerURL := strings.ToLower(pageURL)
	if strings.Contains(lowerURL, "properties") && !strings.Contains(lowerURL, "create") {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ErrSubmitUndetermined
	}

	body := browser.VisibleText(doc)
	if strings.Contains(body, "saved") || strings.Contains(body, "success") {
		return nil
	}

	if messages := validationMessages(doc); len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return ErrSubmitUndetermined
}

func validationMessages(doc *goquery.Document) []string {
	var messages []string
	seen := make(map[string]bool)
	doc.Find(".has-error, .text-danger").Each(func(_ int, s *goquery.Selection) {
		msg := strings.Join(strings.Fields(s.Text()), " ")
		if msg == "" || seen[msg] {
			return
		}
		seen[msg] = true
		messages = append(messages, msg)
	})
	return messages
}
