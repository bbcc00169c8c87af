package crm

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError means the tenant lacks a legacy URL or credentials.
type ConfigurationError struct {
	Tenant string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing CRM configuration for tenant %s: %s", e.Tenant, e.Reason)
}

// NotFoundError means the legacy CRM has no record with the requested id. The
// CRM signals this by serving a blank create form instead of the edit view.
type NotFoundError struct {
	Kind     string
	LegacyID string
	URL      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q was not found in the old CRM, verify manually: %s", e.Kind, e.LegacyID, e.URL)
}

// NavigationError covers login failures, timeouts and unexpected redirects.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// UploadError means the file chooser never opened or uploads did not finish
// within the polling ceiling.
type UploadError struct {
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image upload failed: %s: %v", e.Reason, e.Err)
	}
	return "image upload failed: " + e.Reason
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ValidationError aggregates every error message the legacy form displayed.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "CRM validation errors: " + strings.Join(e.Messages, ", ")
}

// ExtractionWarning is a single field that could not be read or transformed.
type ExtractionWarning struct {
	Field string
	Err   error
}

func (w *ExtractionWarning) Error() string {
	return fmt.Sprintf("Failed to extract %s: %v", w.Field, w.Err)
}

func (w *ExtractionWarning) Unwrap() error {
	return w.Err
}

// ErrSubmitUndetermined is returned when a submit neither navigated, showed a
// success marker, nor displayed validation errors.
var ErrSubmitUndetermined = errors.New("submit outcome undetermined: no navigation, success marker or validation error")

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
