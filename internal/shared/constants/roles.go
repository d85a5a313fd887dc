package constants

// Roles carried in access tokens
const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

// Gin context keys set by the auth middleware
const (
	CTX_USER_ID       = "user_id"
	CTX_USER_EMAIL    = "user_email"
	CTX_USER_ROLE     = "user_role"
	CTX_USER_NAME     = "user_name"
	CTX_TOKEN_ID      = "token_id"
	CTX_TOKEN_EXPIRES = "token_expires"
)
