package employee

import "time"

type Employee struct {
	ID         string
	Code       string // terminal user id used in punch batch files
	Name       string
	Department string
	City       string
	CalendarID *string // default calendar; nil when only fallbacks apply
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
