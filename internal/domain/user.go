package domain

import "time"

type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	IsActive  bool
}

// Session holds the authenticated identity and token for the current
// storefront session. The token is opaque to the client; expiry is only
// discovered when an authenticated call is rejected.
type Session struct {
	User  User
	Token string
}

func (s Session) Active() bool {
	return s.Token != "" && s.User.ID != 0
}

type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}
