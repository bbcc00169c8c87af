package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_bridge/browser/browsertest"
	"crm_bridge/mapping"
)

const imagesHTML = `<html><body>
<div id="tab_images">
  <img src="/uploads/p1_thumb.jpg">
  <img src="data:image/png;base64,AAAA">
  <img src="https://cdn.acme.test/p2_thumb.jpg">
</div>
<img src="/uploads/logo.png">
</body></html>`

func newPullFixture(t *testing.T) (*Extractor, *browsertest.Session, *fakeForm, *fakeLinker, *fakeMigrator) {
	t.Helper()
	page := &browsertest.Page{HTML: imagesHTML}
	session := browsertest.NewSession(page)
	form := newFakeForm()
	linker := &fakeLinker{ownerID: uuid.New(), projectID: uuid.New()}
	media := &fakeMigrator{}

	e := NewExtractor(session, linker, media)
	e.forms = form.factory()
	return e, session, form, linker, media
}

func TestPullExtractsAndResolves(t *testing.T) {
	e, session, form, linker, media := newPullFixture(t)

	form.values[mapping.LocatorHiddenID] = mapping.RawValue{Value: "4411"}
	form.values[mapping.LocatorTitle] = mapping.RawValue{Value: "  Sea View Villa "}
	form.values[`select[name="type_id"]`] = mapping.RawValue{Value: "14", Text: "Detached Villa"}
	form.values[`select[name="location_id"]`] = mapping.RawValue{Value: "924", Text: "Kato Paphos"}
	form.values[`input[name="price"]`] = mapping.RawValue{Value: "1,250,000"}
	form.values[`input[name="features[]"]`] = mapping.RawValue{Values: []string{"Sea views", "Garden", "Helipad"}}
	form.values[`select[name="active"]`] = mapping.RawValue{Value: "1", Text: "Yes"}
	form.values[`input[name="owner[name]"]`] = mapping.RawValue{Value: "Maria Georgiou"}
	form.values[`input[name="extra_fields[project_name]"]`] = mapping.RawValue{Value: "Coral Heights"}
	form.values[`input[name="created_at"]`] = mapping.RawValue{Value: "22/10/2025 16:22"}
	form.values[`input[name="bedrooms"]`] = mapping.RawValue{Value: ""}

	res, err := e.Pull(context.Background(), testTenant(), "4411")
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, "Sea View Villa", res.Data["title"])
	assert.Equal(t, "detached_villa", res.Data["type"])
	assert.Equal(t, "house", res.Data["category"])
	assert.Equal(t, "kato_paphos", res.Data["propertyArea"])
	assert.Equal(t, "paphos", res.Data["propertyLocation"])
	assert.Equal(t, 1250000.0, res.Data["price"])
	assert.Equal(t, []string{"sea_views", "garden"}, res.Data["features"])
	assert.Equal(t, "PUBLISHED", res.Data["publicationStatus"])
	assert.Equal(t, "2025-10-22T16:22:00Z", res.Data["originalCreatedAt"])
	assert.NotContains(t, res.Data, "bedrooms")
	assert.Empty(t, res.Warnings)

	require.NotNil(t, res.OwnerID)
	assert.Equal(t, linker.ownerID, *res.OwnerID)
	require.NotNil(t, res.ProjectID)
	assert.Equal(t, linker.projectID.String(), res.Data["projectId"])

	require.Len(t, media.calls, 1)
	assert.Equal(t, []string{
		"https://crm.acme.test/uploads/p1_full.jpg",
		"https://cdn.acme.test/p2_full.jpg",
	}, media.calls[0])
	assert.Len(t, res.Media, 2)

	assert.Equal(t, []string{"https://crm.acme.test/admin"}, session.Logins)
	assert.Equal(t, "https://crm.acme.test/admin/properties/4411/edit", session.Tab.Gotos[0])
	assert.Equal(t, 1, session.Closed)

	require.NotEmpty(t, form.tabs)
	assert.Equal(t, mapping.TabGeneral, form.tabs[0])
	for i := 1; i < len(form.tabs); i++ {
		assert.NotEqual(t, form.tabs[i-1], form.tabs[i], "tab switched twice in a row")
	}
	assert.NotContains(t, form.reads, "ownerId")
}

func TestPullAccumulatesWarnings(t *testing.T) {
	e, _, form, _, _ := newPullFixture(t)

	form.values[mapping.LocatorReference] = mapping.RawValue{Value: "REF-9"}
	form.values[`select[name="type_id"]`] = mapping.RawValue{Value: "777"}
	form.values[`select[name="location_id"]`] = mapping.RawValue{Value: "5000", Text: "Atlantis"}
	form.values[`input[name="bathrooms"]`] = mapping.RawValue{Value: "many"}
	form.readErr[`input[name="bedrooms"]`] = errBoom

	res, err := e.Pull(context.Background(), testTenant(), "REF-9")
	require.NoError(t, err)

	assert.Contains(t, res.Warnings, "Property Type '777' could not be mapped to a known type")
	assert.Contains(t, res.Warnings, "Location '5000' (Text: Atlantis) could not be mapped to a known area")
	assert.Contains(t, res.Warnings, "Failed to extract bedrooms: boom")
	assert.Contains(t, res.Warnings, `Failed to extract bathrooms: invalid amount "many"`)
	assert.NotContains(t, res.Data, "type")
	assert.NotContains(t, res.Data, "category")
	assert.NotContains(t, res.Data, "propertyArea")
}

func TestPullNotFoundOnBlankForm(t *testing.T) {
	e, session, form, _, media := newPullFixture(t)
	session.Tab.GotoFunc = func(p *browsertest.Page, url string) error {
		p.CurrentURL = "https://crm.acme.test/admin/properties/create"
		return nil
	}

	res, err := e.Pull(context.Background(), testTenant(), "999999")
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "999999", nf.LegacyID)
	assert.True(t, IsNotFound(err))

	var nav *NavigationError
	assert.False(t, errors.As(err, &nav))

	assert.Equal(t, StateNotFound, res.State)
	assert.Equal(t, []string{"id", "reference", "title"}, form.reads)
	assert.Empty(t, media.calls)
	assert.Equal(t, 1, session.Closed)
}

func TestPullRedirectIsNavigationError(t *testing.T) {
	e, session, form, _, _ := newPullFixture(t)
	form.values[mapping.LocatorTitle] = mapping.RawValue{Value: "Some other listing"}
	session.Tab.GotoFunc = func(p *browsertest.Page, url string) error {
		p.CurrentURL = "https://crm.acme.test/admin/dashboard"
		return nil
	}

	res, err := e.Pull(context.Background(), testTenant(), "4411")
	var nav *NavigationError
	require.ErrorAs(t, err, &nav)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, StateFailed, res.State)
}

func TestPullLoginFailureIsFatal(t *testing.T) {
	e, session, _, _, _ := newPullFixture(t)
	session.LoginErr = errBoom

	res, err := e.Pull(context.Background(), testTenant(), "4411")
	var nav *NavigationError
	require.ErrorAs(t, err, &nav)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, StateFailed, res.State)
	assert.Empty(t, session.Tab.Gotos)
	assert.Equal(t, 1, session.Closed)
}

func TestPullMissingCredentials(t *testing.T) {
	e, session, _, _, _ := newPullFixture(t)
	tenant := testTenant()
	tenant.Credentials.Password = ""

	_, err := e.Pull(context.Background(), tenant, "4411")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "password", cfgErr.Reason)
	assert.Equal(t, 0, session.Ready)
	assert.Equal(t, 1, session.Closed)
}

func TestPullOwnerLinkFailureIsWarning(t *testing.T) {
	e, _, form, linker, _ := newPullFixture(t)
	linker.ownerErr = errBoom
	form.values[mapping.LocatorHiddenID] = mapping.RawValue{Value: "4411"}
	form.values[`input[name="owner[name]"]`] = mapping.RawValue{Value: "Maria"}

	res, err := e.Pull(context.Background(), testTenant(), "4411")
	require.NoError(t, err)
	assert.Nil(t, res.OwnerID)
	assert.Contains(t, res.Warnings, "Owner linking failed: boom")
}

func TestTenantURLs(t *testing.T) {
	tenant := testTenant()
	assert.Equal(t, "https://crm.acme.test/admin/properties/7/edit", tenant.propertyEditURL("7"))
	assert.Equal(t, "https://crm.acme.test/admin/requirements/7/edit", tenant.leadEditURL("7"))
	assert.Equal(t, "https://crm.acme.test/admin/properties/create", tenant.defaultCreateURL())

	tenant.EditURLPattern = "https://legacy.test/p/{id}/edit"
	assert.Equal(t, "https://legacy.test/p/7/edit", tenant.propertyEditURL("7"))
}

func TestImageURLs(t *testing.T) {
	urls := ImageURLs(imagesHTML, "https://crm.acme.test/admin/properties/1/edit")
	assert.Equal(t, []string{
		"https://crm.acme.test/uploads/p1_full.jpg",
		"https://cdn.acme.test/p2_full.jpg",
	}, urls)
}
