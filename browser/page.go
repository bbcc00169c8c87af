package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Page is the slice of a browser tab the migration pipelines drive. Selectors
// are CSS locators; the first matching element is used.
type Page interface {
	Goto(url string, timeout time.Duration, idle bool) error
	URL() string
	Content() (string, error)
	Evaluate(expression string, arg any) (any, error)
	Visible(selector string) bool
	Count(selector string) (int, error)
	Click(selector string) error
	Fill(selector, value string) error
	Sleep(d time.Duration)
	// WaitForNavigation runs action and waits for the resulting navigation.
	WaitForNavigation(timeout time.Duration, action func() error) error
	// ChooseFiles arms file chooser interception, runs trigger, and hands paths
	// to the intercepted chooser.
	ChooseFiles(timeout time.Duration, trigger func() error, paths []string) error
	BringToFront() error
}

type playwrightPage struct {
	page playwright.Page
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (p *playwrightPage) Goto(url string, timeout time.Duration, idle bool) error {
	waitUntil := playwright.WaitUntilStateDomcontentloaded
	if idle {
		waitUntil = playwright.WaitUntilStateNetworkidle
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   millis(timeout),
		WaitUntil: waitUntil,
	})
	return err
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Evaluate(expression string, arg any) (any, error) {
	if arg == nil {
		return p.page.Evaluate(expression)
	}
	return p.page.Evaluate(expression, arg)
}

func (p *playwrightPage) Visible(selector string) bool {
	visible, _ := p.page.Locator(selector).First().IsVisible()
	return visible
}

func (p *playwrightPage) Count(selector string) (int, error) {
	return p.page.Locator(selector).Count()
}

func (p *playwrightPage) Click(selector string) error {
	return p.page.Locator(selector).First().Click()
}

func (p *playwrightPage) Fill(selector, value string) error {
	return p.page.Locator(selector).First().Fill(value)
}

func (p *playwrightPage) Sleep(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (p *playwrightPage) WaitForNavigation(timeout time.Duration, action func() error) error {
	_, err := p.page.ExpectNavigation(action, playwright.PageExpectNavigationOptions{
		Timeout:   millis(timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (p *playwrightPage) ChooseFiles(timeout time.Duration, trigger func() error, paths []string) error {
	chooser, err := p.page.ExpectFileChooser(trigger, playwright.PageExpectFileChooserOptions{
		Timeout: millis(timeout),
	})
	if err != nil {
		return fmt.Errorf("file chooser: %w", err)
	}
	if err := chooser.SetFiles(paths); err != nil {
		return fmt.Errorf("set files: %w", err)
	}
	return nil
}

func (p *playwrightPage) BringToFront() error {
	return p.page.BringToFront()
}
