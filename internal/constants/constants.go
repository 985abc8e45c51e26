package constants

// Session / context keys
const (
	SessionCookieName = "assignment_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Template sync defaults. These are fixed product constants, not
// caller-configurable.
const (
	SyncDefaultDueDateOffsetDays = 7
	SyncDefaultDurationMinutes   = 30
	SyncDefaultRequiredFrequency = 1
)
