package schedule

import "errors"

// Schedule domain errors
var (
	ErrCalendarNotFound  = errors.New("calendar not found")
	ErrExceptionNotFound = errors.New("shift exception not found")
	ErrNoScheduleForDate = errors.New("no schedule resolves for the requested date")
)
