package browser_test

import (
	"errors"
	"testing"

	"crm_bridge/browser"
	"crm_bridge/browser/browsertest"
)

func TestAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		content string
		want    bool
	}{
		{"dashboard text", "https://crm.test/admin", `<body><h1>Dashboard</h1></body>`, true},
		{"logout link", "https://crm.test/admin", `<body><a href="/admin/logout">Sign out</a></body>`, true},
		{"login url wins", "https://crm.test/admin/login", `<body>Dashboard</body>`, false},
		{"signin url", "https://crm.test/signin", `<body>logout</body>`, false},
		{"plain page", "https://crm.test/admin", `<body><form><input name="username"></form></body>`, false},
		{"dashboard only in script", "https://crm.test/admin",
			`<body><form><input name="username"></form><script>var afterAuth = '/admin/dashboard';</script></body>`, false},
		{"password field present", "https://crm.test/admin",
			`<body><h1>Dashboard</h1><form><input type="password" name="password"></form></body>`, false},
		{"logout in style ignored", "https://crm.test/admin", `<body><style>.logout{color:red}</style><p>Welcome</p></body>`, false},
	}
	for _, tt := range tests {
		if got := browser.Authenticated(tt.url, tt.content); got != tt.want {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoginSkipsWhenAlreadyAuthenticated(t *testing.T) {
	page := &browsertest.Page{HTML: `<body>Welcome back. Logout</body>`}
	if err := browser.Login(page, "https://crm.test/admin", "agent", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(page.Filled) != 0 || len(page.Clicks) != 0 {
		t.Fatalf("expected no form interaction, filled=%v clicks=%v", page.Filled, page.Clicks)
	}
}

func TestLoginFillsFirstVisibleCandidates(t *testing.T) {
	page := &browsertest.Page{
		HTML: `<body><form></form></body>`,
		Visibles: map[string]bool{
			`input[name="email"]`:    true,
			`input[type="text"]`:     true,
			`input[type="password"]`: true,
			`input[type="submit"]`:   true,
			`button`:                 true,
		},
		GotoFunc: func(p *browsertest.Page, url string) error {
			p.CurrentURL = url + "/login"
			return nil
		},
	}

	if err := browser.Login(page, "https://crm.test/admin", "agent", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if page.Filled[`input[name="email"]`] != "agent" {
		t.Fatalf("expected username in email input, got %v", page.Filled)
	}
	if page.Filled[`input[type="password"]`] != "secret" {
		t.Fatalf("expected password filled, got %v", page.Filled)
	}
	if len(page.Clicks) != 1 || page.Clicks[0] != `input[type="submit"]` {
		t.Fatalf("expected submit input clicked, got %v", page.Clicks)
	}
}

func TestLoginFallsBackToFormSubmit(t *testing.T) {
	page := &browsertest.Page{
		CurrentURL: "https://crm.test/login",
		Visibles: map[string]bool{
			`input[name="username"]`: true,
			`input[name="password"]`: true,
		},
		GotoFunc: func(p *browsertest.Page, url string) error { return nil },
	}
	if err := browser.Login(page, "https://crm.test/login", "agent", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(page.Evals) != 1 {
		t.Fatalf("expected programmatic submit, got %v", page.Evals)
	}
}

func TestLoginFailsWithoutForm(t *testing.T) {
	page := &browsertest.Page{HTML: `<body>Maintenance</body>`, CurrentURL: "https://crm.test/login"}
	page.GotoFunc = func(p *browsertest.Page, url string) error { return nil }

	err := browser.Login(page, "https://crm.test/login", "agent", "secret")
	if !errors.Is(err, browser.ErrLoginFormMissing) {
		t.Fatalf("expected ErrLoginFormMissing, got %v", err)
	}
}

func TestLoginPropagatesNavigationError(t *testing.T) {
	page := &browsertest.Page{}
	page.NavigateFunc = func(p *browsertest.Page) error { return errors.New("timeout") }
	page.Visibles = map[string]bool{`input[name="username"]`: true, `input[name="password"]`: true, `button`: true}
	page.GotoFunc = func(p *browsertest.Page, url string) error {
		p.CurrentURL = "https://crm.test/login"
		return nil
	}
	if err := browser.Login(page, "https://crm.test", "a", "b"); err == nil {
		t.Fatalf("expected error")
	}
}
