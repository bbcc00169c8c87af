package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_bridge/browser/browsertest"
	"crm_bridge/mapping"
)

const dashboardHTML = `<html><body>
<nav><a href="/admin/properties">Properties</a> <a href="/admin/properties/new">+ Add Property</a></nav>
</body></html>`

func pushRecord() mapping.Record {
	return mapping.Record{
		"title":            "Sea View Villa",
		"description":      "<p>Stunning views</p>",
		"status":           "ACTIVE",
		"goal":             "SALE",
		"type":             "town_house",
		"propertyArea":     "kato_paphos",
		"propertyLocation": "paphos",
		"price":            450000.0,
		"features":         []string{"sea_views"},
		"ownerName":        "Maria Georgiou",
		"category":         "house",
	}
}

func pushForm() *fakeForm {
	form := newFakeForm()
	form.options[`select[name="type_id"]`] = []mapping.Option{{Value: "14", Text: "Detached Villa"}, {Value: "17", Text: "Town House"}}
	form.options[`select[name="location_id"]`] = []mapping.Option{{Value: "861", Text: "Paphos"}, {Value: "924", Text: "Kato Paphos"}}
	form.options[`select[name="status"]`] = []mapping.Option{{Value: "1", Text: "For Rent"}, {Value: "3", Text: "For Sale"}}
	form.options[`select[name="active"]`] = []mapping.Option{{Value: "0", Text: "No"}, {Value: "2", Text: "Pending"}}
	form.options[`#owner_id`] = []mapping.Option{{Value: "", Text: "Select owner"}, {Value: "add", Text: "Add new owner"}}
	form.boxes[`input[name="features[]"]`] = []mapping.Checkbox{{Index: 0, Label: "Garden"}, {Index: 1, Label: "Sea views"}}
	return form
}

func TestPushFillsAndSubmits(t *testing.T) {
	page := &browsertest.Page{
		CurrentURL: "https://crm.acme.test/admin",
		HTML:       dashboardHTML,
		Visibles:   map[string]bool{"#submitButton": true},
	}
	session := browsertest.NewSession(page)
	form := pushForm()

	s := NewSubmitter(session, NewUploader(nil, DefaultPollPolicy))
	s.forms = form.factory()

	res, err := s.Push(context.Background(), testTenant(), pushRecord(), nil)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, PushSuccessMessage, res.Message)
	assert.Equal(t, []string{"https://crm.acme.test/admin/properties/new"}, page.Gotos)

	assert.Equal(t, []string{"17"}, form.selected[`select[name="type_id"]`])
	assert.Equal(t, []string{"924"}, form.selected[`select[name="location_id"]`])
	assert.Equal(t, []string{"3"}, form.selected[`select[name="status"]`])
	assert.Equal(t, []string{"2"}, form.selected[`select[name="active"]`])
	assert.Equal(t, []string{"add"}, form.selected[`#owner_id`])
	assert.NotContains(t, form.selected, `select[name="condition"]`)

	assert.Equal(t, "Sea View Villa", form.set[mapping.LocatorTitle])
	assert.Equal(t, "450000", form.set[`input[name="price"]`])
	assert.Equal(t, "Maria Georgiou", form.set[`input[name="owner[name]"]`])
	assert.Equal(t, "<p>Stunning views</p>", form.rich[`textarea[name="en[description]"]`])
	assert.Equal(t, []int{1}, form.checked)

	assert.Equal(t, []string{mapping.TabGeneral, mapping.TabFeatures, mapping.TabPublish, mapping.TabOwner}, form.tabs)
	assert.Contains(t, page.Clicks, "#submitButton")
	assert.Equal(t, 1, session.Closed)
}

func TestPushUsesDefaultCreateURL(t *testing.T) {
	page := &browsertest.Page{HTML: `<body>Welcome</body>`}
	session := browsertest.NewSession(page)
	s := NewSubmitter(session, NewUploader(nil, DefaultPollPolicy))
	s.forms = newFakeForm().factory()

	_, err := s.Push(context.Background(), testTenant(), mapping.Record{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://crm.acme.test/admin/properties/create"}, page.Gotos)
	assert.NotEmpty(t, page.Evals, "expected programmatic submit without a visible button")
}

func TestPushValidationErrors(t *testing.T) {
	page := &browsertest.Page{
		HTML: `<body><form id="form">
<div class="form-group has-error"><span class="help-block">Price is required</span></div>
<p class="text-danger">Reference already exists</p>
</form></body>`,
		NavigateFunc: func(p *browsertest.Page) error { return errors.New("navigation timeout") },
	}
	session := browsertest.NewSession(page)
	s := NewSubmitter(session, NewUploader(nil, DefaultPollPolicy))
	s.forms = newFakeForm().factory()

	res, err := s.Push(context.Background(), testTenant(), mapping.Record{"title": "x"}, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Price is required", "Reference already exists"}, vErr.Messages)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, 1, session.Closed)
}

func TestPushUploadFailureAborts(t *testing.T) {
	srv := imageServer(t)
	page := &browsertest.Page{ChooserErr: errBoom}
	session := browsertest.NewSession(page)
	u := NewUploader(srv.Client(), DefaultPollPolicy)
	u.tempDir = t.TempDir()
	s := NewSubmitter(session, u)
	s.forms = newFakeForm().factory()

	res, err := s.Push(context.Background(), testTenant(), mapping.Record{}, []string{srv.URL + "/a.jpg"})
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, StateFailed, res.State)
	assert.NotContains(t, page.Clicks, "#submitButton")
}

func TestVerifySubmit(t *testing.T) {
	assert.NoError(t, VerifySubmit("https://crm.test/admin/properties", `<body></body>`))
	assert.NoError(t, VerifySubmit("https://crm.test/admin/properties/create", `<body><div class="alert">Property saved</div></body>`))

	err := VerifySubmit("https://crm.test/admin/properties/create", `<body><span class="text-danger">Title is required</span></body>`)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "CRM validation errors: Title is required", vErr.Error())

	err = VerifySubmit("https://crm.test/admin/properties/create", `<body>Nothing to see</body>`)
	assert.ErrorIs(t, err, ErrSubmitUndetermined)
}

func TestVerifySubmitIgnoresScriptText(t *testing.T) {
	html := `<body><div class="has-error">The reference field is required.</div>` +
		`<script>Dropzone.options.mydropzone = { success: function() {} };</script></body>`
	err := VerifySubmit("https://crm.test/admin/properties/create", html)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"The reference field is required."}, vErr.Messages)

	err = VerifySubmit("https://crm.test/admin/properties/create", `<body><script>toastr.success('saved')</script></body>`)
	assert.ErrorIs(t, err, ErrSubmitUndetermined)
}

func TestCreateLink(t *testing.T) {
	assert.Equal(t, "https://crm.test/admin/properties/new", CreateLink(dashboardHTML, "https://crm.test/admin"))
	assert.Equal(t, "", CreateLink(`<a href="/x">Listings</a>`, "https://crm.test/admin"))
}
