package models

const DefaultEventColor = "#FFFFFF"

// CalendarEvent dates are "YYYY-MM-DD" and times "HH:MM", stored as text.
type CalendarEvent struct {
	ID          int64
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	CreatedBy   int64
	Color       string
}
