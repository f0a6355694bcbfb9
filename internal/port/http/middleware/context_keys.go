package middleware

type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id.
	UserIDCtxKey = ContextKey("user_id")
	// UserEmailCtxKey holds the authenticated user's email.
	UserEmailCtxKey = ContextKey("user_email")
	// UserNameCtxKey holds the authenticated user's display name.
	UserNameCtxKey = ContextKey("user_name")
	// UserRoleCtxKey holds the authenticated user's role, lowercased.
	UserRoleCtxKey = ContextKey("user_role")
)
