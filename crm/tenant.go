package crm

import (
	"strings"

	"crm_bridge/models"
)

// Tenant is one legacy CRM installation and the login used against it.
type Tenant struct {
	ID                 string
	Credentials        models.Credentials
	EditURLPattern     string
	LeadEditURLPattern string
	CreateURL          string
}

func (t Tenant) validate() error {
	var missing []string
	if t.Credentials.BaseURL == "" {
		missing = append(missing, "CRM URL")
	}
	if t.Credentials.Username == "" {
		missing = append(missing, "username")
	}
	if t.Credentials.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Tenant: t.ID, Reason: strings.Join(missing, ", ")}
	}
	return nil
}

// base strips any /admin suffix from the configured URL.
func (t Tenant) base() string {
	base := strings.TrimRight(t.Credentials.BaseURL, "/")
	if i := strings.Index(base, "/admin"); i >= 0 {
		base = base[:i]
	}
	return base
}

func (t Tenant) propertyEditURL(legacyID string) string {
	if strings.Contains(t.EditURLPattern, "{id}") {
		return strings.ReplaceAll(t.EditURLPattern, "{id}", legacyID)
	}
	return t.base() + "/admin/properties/" + legacyID + "/edit"
}

func (t Tenant) leadEditURL(legacyID string) string {
	if strings.Contains(t.LeadEditURLPattern, "{id}") {
		return strings.ReplaceAll(t.LeadEditURLPattern, "{id}", legacyID)
	}
	return t.base() + "/admin/requirements/" + legacyID + "/edit"
}

func (t Tenant) defaultCreateURL() string {
	if t.CreateURL != "" {
		return t.CreateURL
	}
	return t.base() + "/admin/properties/create"
}
