package constant

type contextKey string

const UserIDKey contextKey = "user_id"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type AuthEvent string

const (
	AuthEventSignedIn  AuthEvent = "SIGNED_IN"
	AuthEventSignedOut AuthEvent = "SIGNED_OUT"
	AuthEventUpdated   AuthEvent = "USER_UPDATED"
)
