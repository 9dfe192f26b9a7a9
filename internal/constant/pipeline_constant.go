package constant

// Session lifecycle statuses.
const (
	SessionStatusActive     = "active"
	SessionStatusProcessing = "processing"
	SessionStatusCompleted  = "completed"
	SessionStatusError      = "error"
)

// Generated content kinds.
const (
	ContentTypeSummary = "summary"
	ContentTypeEbook   = "ebook"
	ContentTypeRevised = "revised"
)
