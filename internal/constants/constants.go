package constants

const (
	// Pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100

	// Session
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"

	// Context keys set by middleware
	ContextKeyActingUser = "acting_user"
	ContextKeyRequestID  = "request_id"
	HeaderRequestID      = "X-Request-ID"

	// Passwords
	MinPasswordLength = 8

	// Field limits
	MinTaskTitleLength       = 3
	MaxTaskTitleLength       = 255
	MinTaskDescriptionLength = 3
	MaxCommentLength         = 1000
)
