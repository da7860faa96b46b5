package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsBuiltinRole reports whether name is one of the seeded roles the
// permission checks depend on.
func IsBuiltinRole(name string) bool {
	return name == RoleAdmin || name == RoleUser
}

type Role struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	AccessRights string `db:"access_rights"`
}
