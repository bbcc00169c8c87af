package browser

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	loginNavTimeout    = 60 * time.Second
	loginSubmitTimeout = 30 * time.Second
)

var (
	usernameSelectors = []string{
		`input[name="username"]`,
		`input[name="email"]`,
		`input[type="text"]`,
	}
	passwordSelectors = []string{
		`input[name="password"]`,
		`input[type="password"]`,
	}
	submitSelectors = []string{
		`button[type="submit"]`,
		`input[type="submit"]`,
		`button`,
	}
)

var ErrLoginFormMissing = errors.New("login form not found")

// Login signs in to the legacy CRM unless the page already shows an
// authenticated session.
func Login(page Page, url, username, password string) error {
	log.Printf("[session] Navigating to %s", url)
	if err := page.Goto(url, loginNavTimeout, false); err != nil {
		return fmt.Errorf("login navigation to %s: %w", url, err)
	}

	content, err := page.Content()
	if err != nil {
		return fmt.Errorf("read login page: %w", err)
	}
	if Authenticated(page.URL(), content) {
		log.Println("[session] Already logged in")
		return nil
	}

	userSel := firstVisible(page, usernameSelectors)
	passSel := firstVisible(page, passwordSelectors)
	if userSel == "" || passSel == "" {
		return fmt.Errorf("%w at %s", ErrLoginFormMissing, page.URL())
	}

	if err := page.Fill(userSel, username); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := page.Fill(passSel, password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}

	submit := func() error {
		if sel := firstVisible(page, submitSelectors); sel != "" {
			return page.Click(sel)
		}
		_, err := page.Evaluate(`() => { const f = document.querySelector('form'); if (f) f.submit(); }`, nil)
		return err
	}

	if err := page.WaitForNavigation(loginSubmitTimeout, submit); err != nil {
		return fmt.Errorf("login submit: %w", err)
	}

	log.Println("[session] Login submitted")
	return nil
}

// Authenticated reports whether a page looks like a signed-in CRM view: not a
// login URL, no password field, and dashboard or logout markers in the
// visible body.
func Authenticated(url, content string) bool {
	lower := strings.ToLower(url)
	if strings.Contains(lower, "login") || strings.Contains(lower, "signin") {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return false
	}
	if doc.Find(`input[type="password"]`).Length() > 0 {
		return false
	}
	if doc.Find(`a[href*="logout"]`).Length() > 0 {
		return true
	}
	text := VisibleText(doc)
	return strings.Contains(text, "dashboard") || strings.Contains(text, "logout")
}

func firstVisible(page Page, selectors []string) string {
	for _, sel := range selectors {
		if page.Visible(sel) {
			return sel
		}
	}
	return ""
}
