package workentry

import "time"

// ListFilter filters the work entry listing.
type ListFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Category   string
	Page       int
	Limit      int
}

type WorkEntryResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartAt    string `json:"start_at"`
	EndAt      string `json:"end_at"`
	Category   string `json:"category"`
	Hours      string `json:"hours"`
}

type ListWorkEntriesResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Entries    []WorkEntryResponse `json:"entries"`
}

type InconsistencyResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Count      int    `json:"count"`
}
