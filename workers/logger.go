package workers

import "crm_bridge/models"

// LogFunc records a worker message against a tenant's migration log.
type LogFunc func(level models.LogLevel, tenantID, message string)

// NoOpLogger does nothing (default)
var NoOpLogger LogFunc = func(level models.LogLevel, tenantID, message string) {}
