package models

import "time"

type Document struct {
	ID         int64
	Name       string
	Type       string
	AuthorID   int64
	CreatedAt  time.Time
	StatusID   int64
	Version    int
	FileType   string
	ContentKey string
}

// DocumentView is a document row joined with its author and status, as
// listed by search.
type DocumentView struct {
	Document
	AuthorName string
	StatusName string
}

type DocumentFilter struct {
	Text     string
	Status   string
	Type     string
	AuthorID int64
}

type Status struct {
	ID          int64
	Name        string
	Description string
}

// Seeded document statuses.
const (
	StatusCreated  = "Создан"
	StatusReview   = "На рассмотрении"
	StatusApproved = "Согласован"
	StatusRejected = "Отклонен"
	StatusDone     = "Выполнен"
	StatusArchived = "Архивирован"
	StatusDeleted  = "Удален"
)
