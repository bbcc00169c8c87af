package taxonomy

import "strings"

const (
	StatusActive = "ACTIVE"
	StatusSold   = "SOLD"
	StatusRented = "RENTED"

	GoalRent = "RENT"
	GoalSale = "SALE"
)

// ListingStatusFromCode maps the legacy status select.
func ListingStatusFromCode(code string) string {
	switch strings.TrimSpace(code) {
	case "4":
		return StatusSold
	case "2":
		return StatusRented
	default:
		return StatusActive
	}
}

// ListingStatusCode picks the legacy status for a listing. Open listings are
// "for rent" or "for sale" depending on the goal.
func ListingStatusCode(status, goal string) string {
	switch strings.ToUpper(status) {
	case StatusSold:
		return "4"
	case StatusRented:
		return "2"
	}
	if strings.ToUpper(goal) == GoalRent {
		return "1"
	}
	return "3"
}

const (
	PublicationPublished = "PUBLISHED"
	PublicationUnlisted  = "UNLISTED"
	PublicationPending   = "PENDING"
	PublicationDraft     = "DRAFT"

	// PublicationPendingCode is written on every push so listings land in the
	// legacy review queue rather than going live.
	PublicationPendingCode = "2"
)

// PublicationStatus derives the publication state from the legacy "active"
// select. Unrecognised input is a draft.
func PublicationStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "1", "active":
		return PublicationPublished
	case "no", "0", "inactive":
		return PublicationUnlisted
	case "pending", "2":
		return PublicationPending
	default:
		return PublicationDraft
	}
}
