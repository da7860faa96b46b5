package models

import "time"

// Action types written to the history log.
const (
	ActionCreate   = "create"
	ActionSearch   = "search"
	ActionDownload = "download"
	ActionDelete   = "delete"
	ActionLogin    = "login"
	ActionRegister = "register"
	ActionUpdate   = "update"
	ActionClear    = "clear"
)

type Action struct {
	ID          int64
	Type        string
	Object      string
	DocumentID  *int64
	UserID      int64
	CreatedAt   time.Time
	Description string
}

// ActionView is an action joined with its actor's name.
type ActionView struct {
	Action
	Actor string
}
