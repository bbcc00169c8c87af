package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_bridge/browser/browsertest"
	"crm_bridge/mapping"
)

const historyHTML = `<table id="history_table">
<tr><td>05-03-2024</td><td>Called,   no answer</td></tr>
<tr><td>07-03-2024</td><td>Viewing booked</td></tr>
<tr><td> </td></tr>
</table>`

func TestPullLeadCombinesContactAndHistory(t *testing.T) {
	page := &browsertest.Page{HTML: historyHTML}
	session := browsertest.NewSession(page)
	form := newFakeForm()
	form.values[`input[name="contact_email"]`] = mapping.RawValue{Value: "maria@example.com"}
	form.values[`select[name="source_id"]`] = mapping.RawValue{Value: "3"}
	form.values[`input[name="follow_up"]`] = mapping.RawValue{Value: "05-03-2024"}
	form.values[`textarea[name="requirements_other_details"]`] = mapping.RawValue{Value: "Sea view only"}
	form.values[`select[name="requirements_types[]"]`] = mapping.RawValue{Values: []string{"14", "17"}}
	form.values[`input[name="first_name"]`] = mapping.RawValue{Value: "Maria"}
	form.values[`input[name="last_name"]`] = mapping.RawValue{Value: "Georgiou"}
	form.values[`input[name="postcode"]`] = mapping.RawValue{Value: "8045"}
	form.values[`select[name="nationality"]`] = mapping.RawValue{Value: "CY", Text: "Cypriot"}

	e := NewExtractor(session, nil, nil)
	e.forms = form.factory()
	e.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := e.PullLead(context.Background(), testTenant(), "812")
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)

	assert.Equal(t, "https://crm.acme.test/admin/requirements/812/edit", page.Gotos[0])
	assert.Equal(t, "Maria Georgiou", res.Data["name"])
	assert.Equal(t, "maria@example.com", res.Data["email"])
	assert.Equal(t, "2024-03-05", res.Data["leadFollowUpDate"])
	assert.Equal(t, []string{"14", "17"}, res.Data["requirementPropertyTypes"])
	assert.Equal(t,
		"Sea view only\n\n--- IMPORTED HISTORY ---\n05-03-2024\tCalled, no answer\n07-03-2024\tViewing booked",
		res.Data["requirementOtherDetails"])

	payload, ok := res.Data["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Old CRM", payload["importedFrom"])
	assert.Equal(t, "2026-01-02T03:04:05Z", payload["importDate"])
	assert.Equal(t, "8045", payload["postcode"])
	assert.Equal(t, "Cypriot", payload["nationality"])
	assert.NotContains(t, payload, "address")
	assert.NotContains(t, res.Data, "firstName")
	assert.Equal(t, 1, session.Closed)
}

func TestPullLeadRedirectIsNotFound(t *testing.T) {
	page := &browsertest.Page{
		GotoFunc: func(p *browsertest.Page, url string) error {
			p.CurrentURL = "https://crm.acme.test/admin/requirements"
			return nil
		},
	}
	session := browsertest.NewSession(page)
	e := NewExtractor(session, nil, nil)
	e.forms = newFakeForm().factory()

	res, err := e.PullLead(context.Background(), testTenant(), "812")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Lead", nf.Kind)
	assert.Equal(t, StateNotFound, res.State)
	assert.Equal(t, 1, session.Closed)
}

func TestHistoryTextWithoutTable(t *testing.T) {
	assert.Equal(t, "", HistoryText(`<div>No history</div>`))
}
