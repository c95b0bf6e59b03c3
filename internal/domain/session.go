package domain

// Flow identifies which multi-step task currently owns a user's session.
// A user has at most one active flow; starting a new one discards the rest.
type Flow int

const (
	FlowNone Flow = iota
	FlowLinkGeneration
	FlowCatalogManagement
	FlowPasswordChange
	FlowUserDeletion
)

// LinkState holds fields collected during link generation
type LinkState struct {
	BaseURL  string
	Source   string
	Medium   string
	Campaign string

	// Date in YYYY-MM-DD, set by a date choice or manual input
	Date string
	// ManualContent overrides the slug/date-derived utm_content
	ManualContent string

	AwaitingDate    bool
	AwaitingContent bool
}

// CatalogStep is the current step of the catalog-editing flow
type CatalogStep string

const (
	CatalogChoosingAction CatalogStep = "choosing_action"
	CatalogWaitingName    CatalogStep = "waiting_name"
	CatalogWaitingValue   CatalogStep = "waiting_value"
)

// CatalogState holds progress of the catalog-editing flow
type CatalogState struct {
	Category    string
	Step        CatalogStep
	PendingName string
}
