package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrUnknownTerminalCode = errors.New("terminal code does not match any employee")
)
