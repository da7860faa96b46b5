package models

import "time"

// Session describes an authenticated user for the rest of the process.
// Label is RoleAdmin or RoleUser and drives every permission check.
type Session struct {
	UserID     int64
	Login      string
	FirstName  string
	LastName   string
	MiddleName string
	RoleID     int64
	RoleName   string
	Label      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Label == RoleAdmin
}
