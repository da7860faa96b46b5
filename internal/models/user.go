// Package models defines the records persisted by docflow and the values
// passed between its services and the CLI.
package models

import "fmt"

type User struct {
	ID         int64  `db:"id"`
	Login      string `db:"login"`
	Password   string `db:"password"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	MiddleName string `db:"middle_name"`
	RoleID     int64  `db:"role_id"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
}

// UserListItem is a user row joined with its role name, as shown in the
// administration listing.
type UserListItem struct {
	ID         int64
	Login      string
	FirstName  string
	LastName   string
	MiddleName string
	Email      string
	Phone      string
	RoleName   string
}

// DisplayName renders "Last F.M." with initials only for non-empty parts.
func (u UserListItem) DisplayName() string {
	name := u.LastName
	if i := initial(u.FirstName); i != "" {
		name += " " + i
		if m := initial(u.MiddleName); m != "" {
			name += m
		}
	}
	return name
}

func initial(s string) string {
	for _, r := range s {
		return fmt.Sprintf("%c.", r)
	}
	return ""
}

// Candidate is a registration form as typed by the user. Only the login and
// the password pair are checked; the rest is stored as given. RoleID zero
// means the default "user" role.
type Candidate struct {
	FirstName       string
	LastName        string
	MiddleName      string
	Login           string `validate:"required,login"`
	Email           string
	Phone           string
	Password        string `validate:"required,password_policy"`
	ConfirmPassword string `validate:"eqfield=Password"`
	RoleID          int64
}
