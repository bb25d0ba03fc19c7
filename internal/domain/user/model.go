package user

import "time"

// User is a registered identity tied to the external auth provider.
type User struct {
	ID          string
	Email       string
	IdentityUID string
	CreatedAt   time.Time
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID string
	Email  string
}
