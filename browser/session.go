package browser

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Session is the single browser the bridge drives. Callers serialize access:
// one logical operation at a time, closing the session when done.
type Session interface {
	EnsureReady(ctx context.Context) error
	Page(ctx context.Context) (Page, error)
	Login(ctx context.Context, url, username, password string) error
	Close() error
}

type Options struct {
	Headless bool
	Install  bool
}

// Launcher starts browsers for a Manager.
type Launcher interface {
	Launch(opts Options) (Instance, error)
	Stop() error
}

// Instance is one running browser with its context.
type Instance interface {
	IsConnected() bool
	NewPage() (Tab, error)
	Close()
}

// Tab is a Page the Manager can check and close.
type Tab interface {
	Page
	IsClosed() bool
	Close() error
}

var launchArgs = []string{
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--disable-blink-features=AutomationControlled",
}

// Manager owns one Chromium process, launched lazily and relaunched when the
// held handle reports disconnected.
type Manager struct {
	opts     Options
	launcher Launcher

	mu       sync.Mutex
	instance Instance
	page     Tab
}

func NewManager(opts Options) *Manager {
	return NewManagerWithLauncher(opts, &playwrightLauncher{})
}

func NewManagerWithLauncher(opts Options, launcher Launcher) *Manager {
	return &Manager{opts: opts, launcher: launcher}
}

func (m *Manager) EnsureReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureLocked()
}

func (m *Manager) ensureLocked() error {
	if m.instance != nil && m.instance.IsConnected() {
		return nil
	}
	if m.instance != nil {
		log.Println("[session] Browser disconnected, relaunching")
		m.teardownLocked()
	}

	inst, err := m.launcher.Launch(m.opts)
	if err != nil {
		return err
	}
	m.instance = inst
	log.Println("[session] Browser launched")
	return nil
}

// Page returns the reusable tab, creating it on first use.
func (m *Manager) Page(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLocked(); err != nil {
		return nil, err
	}

	if m.page == nil || m.page.IsClosed() {
		pg, err := m.instance.NewPage()
		if err != nil {
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
		m.page = pg
	}

	if err := m.page.BringToFront(); err != nil {
		log.Printf("[session] Bring to front failed: %v", err)
	}
	return m.page, nil
}

func (m *Manager) Login(ctx context.Context, url, username, password string) error {
	page, err := m.Page(ctx)
	if err != nil {
		return err
	}
	return Login(page, url, username, password)
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardownLocked()
	return m.launcher.Stop()
}

func (m *Manager) teardownLocked() {
	if m.page != nil {
		m.page.Close()
		m.page = nil
	}
	if m.instance != nil {
		m.instance.Close()
		m.instance = nil
	}
}

type playwrightLauncher struct {
	pw *playwright.Playwright
}

func (l *playwrightLauncher) Launch(opts Options) (Instance, error) {
	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	var err error
	if l.pw == nil {
		l.pw, err = playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start playwright: %w", err)
		}
	}

	b, err := l.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     launchArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 900},
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	return &playwrightInstance{browser: b, context: bctx}, nil
}

func (l *playwrightLauncher) Stop() error {
	if l.pw == nil {
		return nil
	}
	err := l.pw.Stop()
	l.pw = nil
	return err
}

type playwrightInstance struct {
	browser playwright.Browser
	context playwright.BrowserContext
}

func (i *playwrightInstance) IsConnected() bool {
	return i.browser.IsConnected()
}

func (i *playwrightInstance) NewPage() (Tab, error) {
	pg, err := i.context.NewPage()
	if err != nil {
		return nil, err
	}
	return &playwrightPage{page: pg}, nil
}

func (i *playwrightInstance) Close() {
	i.context.Close()
	i.browser.Close()
}

func (p *playwrightPage) IsClosed() bool {
	return p.page.IsClosed()
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
