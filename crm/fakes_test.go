package crm

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"crm_bridge/browser"
	"crm_bridge/mapping"
	"crm_bridge/models"
)

type fakeForm struct {
	values  map[string]mapping.RawValue
	readErr map[string]error
	options map[string][]mapping.Option
	boxes   map[string][]mapping.Checkbox

	tabs     []string
	reads    []string
	selected map[string][]string
	set      map[string]string
	rich     map[string]string
	checked  []int
}

func newFakeForm() *fakeForm {
	return &fakeForm{
		values:   make(map[string]mapping.RawValue),
		readErr:  make(map[string]error),
		options:  make(map[string][]mapping.Option),
		boxes:    make(map[string][]mapping.Checkbox),
		selected: make(map[string][]string),
		set:      make(map[string]string),
		rich:     make(map[string]string),
	}
}

func (f *fakeForm) factory() FormFactory {
	return func(browser.Page) Form { return f }
}

func (f *fakeForm) SwitchTab(tab string) error {
	f.tabs = append(f.tabs, tab)
	return nil
}

func (f *fakeForm) Read(d mapping.Descriptor) (mapping.RawValue, bool, error) {
	f.reads = append(f.reads, d.Field)
	if err := f.readErr[d.Locator]; err != nil {
		return mapping.RawValue{}, false, err
	}
	v, ok := f.values[d.Locator]
	return v, ok, nil
}

func (f *fakeForm) Options(locator string) ([]mapping.Option, error) {
	return f.options[locator], nil
}

func (f *fakeForm) Select(locator, value string) error {
	return f.SelectMany(locator, []string{value})
}

func (f *fakeForm) SelectMany(locator string, values []string) error {
	f.selected[locator] = values
	return nil
}

func (f *fakeForm) SetValue(locator, value string) error {
	f.set[locator] = value
	return nil
}

func (f *fakeForm) SetChecked(locator string, checked bool) error {
	if checked {
		f.set[locator] = "1"
	} else {
		f.set[locator] = "0"
	}
	return nil
}

func (f *fakeForm) SetRichText(locator, html string) error {
	f.rich[locator] = html
	return nil
}

func (f *fakeForm) Checkboxes(locator string) ([]mapping.Checkbox, error) {
	return f.boxes[locator], nil
}

func (f *fakeForm) Check(_ string, index int) error {
	f.checked = append(f.checked, index)
	return nil
}

type fakeLinker struct {
	ownerID   uuid.UUID
	projectID uuid.UUID
	ownerErr  error
	owners    []mapping.Record
}

func (l *fakeLinker) LinkOwner(_ context.Context, _ string, rec mapping.Record) (*uuid.UUID, error) {
	if l.ownerErr != nil {
		return nil, l.ownerErr
	}
	if rec.String("ownerName") == "" {
		return nil, nil
	}
	l.owners = append(l.owners, rec)
	id := l.ownerID
	return &id, nil
}

func (l *fakeLinker) LinkProject(_ context.Context, _ string, rec mapping.Record) (*uuid.UUID, error) {
	if rec.String("projectName") == "" {
		return nil, nil
	}
	id := l.projectID
	return &id, nil
}

type fakeMigrator struct {
	calls [][]string
}

func (m *fakeMigrator) Migrate(_ context.Context, urls []string) ([]models.MediaAsset, []string) {
	m.calls = append(m.calls, urls)
	assets := make([]models.MediaAsset, len(urls))
	for i, u := range urls {
		assets[i] = models.MediaAsset{Ordinal: i, SourceURL: u, DeliveryURL: u}
	}
	return assets, nil
}

var errBoom = errors.New("boom")

func testTenant() Tenant {
	return Tenant{
		ID: "acme",
		Credentials: models.Credentials{
			BaseURL:  "https://crm.acme.test/admin",
			Username: "agent",
			Password: "secret",
		},
	}
}

