// Package browsertest provides an in-memory browser.Page and browser.Session
// for exercising the migration pipelines without Chromium.
package browsertest

import (
	"context"
	"errors"
	"sync"
	"time"

	"crm_bridge/browser"
)

// Page is a scriptable browser.Page. Zero values behave like an empty tab.
type Page struct {
	mu sync.Mutex

	CurrentURL string
	HTML       string
	Visibles   map[string]bool
	Counts     map[string]int

	// GotoFunc may rewrite CurrentURL and HTML to simulate redirects.
	GotoFunc     func(p *Page, url string) error
	EvalFunc     func(p *Page, expression string, arg any) (any, error)
	ClickFunc    func(p *Page, selector string) error
	NavigateFunc func(p *Page) error
	// OnSleep runs on every Sleep so polling loops can observe state changes.
	OnSleep func(p *Page, n int)

	ChooserErr error

	Gotos   []string
	Clicks  []string
	Filled  map[string]string
	Evals   []string
	Chosen  []string
	Slept   time.Duration
	sleeps  int
	Fronted int
}

var _ browser.Page = (*Page)(nil)

func (p *Page) Goto(url string, _ time.Duration, _ bool) error {
	p.mu.Lock()
	p.Gotos = append(p.Gotos, url)
	fn := p.GotoFunc
	if fn == nil {
		p.CurrentURL = url
	}
	p.mu.Unlock()
	if fn != nil {
		return fn(p, url)
	}
	return nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CurrentURL
}

func (p *Page) Content() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.HTML, nil
}

func (p *Page) Evaluate(expression string, arg any) (any, error) {
	p.mu.Lock()
	p.Evals = append(p.Evals, expression)
	fn := p.EvalFunc
	p.mu.Unlock()
	if fn != nil {
		return fn(p, expression, arg)
	}
	return nil, nil
}

func (p *Page) Visible(selector string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Visibles[selector]
}

func (p *Page) Count(selector string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Counts[selector], nil
}

// SetCount changes a selector count, typically from OnSleep.
func (p *Page) SetCount(selector string, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Counts == nil {
		p.Counts = make(map[string]int)
	}
	p.Counts[selector] = n
}

func (p *Page) Click(selector string) error {
	p.mu.Lock()
	p.Clicks = append(p.Clicks, selector)
	fn := p.ClickFunc
	p.mu.Unlock()
	if fn != nil {
		return fn(p, selector)
	}
	return nil
}

func (p *Page) Fill(selector, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Filled == nil {
		p.Filled = make(map[string]string)
	}
	p.Filled[selector] = value
	return nil
}

func (p *Page) Sleep(d time.Duration) {
	p.mu.Lock()
	p.Slept += d
	p.sleeps++
	n := p.sleeps
	fn := p.OnSleep
	p.mu.Unlock()
	if fn != nil {
		fn(p, n)
	}
}

func (p *Page) WaitForNavigation(_ time.Duration, action func() error) error {
	if err := action(); err != nil {
		return err
	}
	p.mu.Lock()
	fn := p.NavigateFunc
	p.mu.Unlock()
	if fn != nil {
		return fn(p)
	}
	return nil
}

func (p *Page) ChooseFiles(_ time.Duration, trigger func() error, paths []string) error {
	if err := trigger(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ChooserErr != nil {
		return p.ChooserErr
	}
	p.Chosen = append(p.Chosen, paths...)
	return nil
}

func (p *Page) BringToFront() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Fronted++
	return nil
}

// Session hands out one Page and records its lifecycle calls.
type Session struct {
	Tab      *Page
	LoginErr error

	Ready  int
	Logins []string
	Closed int
}

var _ browser.Session = (*Session)(nil)

func NewSession(tab *Page) *Session {
	return &Session{Tab: tab}
}

func (s *Session) EnsureReady(ctx context.Context) error {
	s.Ready++
	return ctx.Err()
}

func (s *Session) Page(ctx context.Context) (browser.Page, error) {
	if s.Tab == nil {
		return nil, errors.New("no page")
	}
	return s.Tab, ctx.Err()
}

func (s *Session) Login(_ context.Context, url, _, _ string) error {
	s.Logins = append(s.Logins, url)
	return s.LoginErr
}

func (s *Session) Close() error {
	s.Closed++
	return nil
}
