package employee

import "context"

// EmployeeRepository defines data access methods for employee master data.
type EmployeeRepository interface {
	// GetByID retrieves one employee
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByIDs retrieves the given employees, skipping unknown ids
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)

	// ListByCodes maps terminal user codes to employees.
	// Used by punch batch ingestion.
	ListByCodes(ctx context.Context, codes []string) ([]Employee, error)

	// ListActive retrieves all active employees
	ListActive(ctx context.Context) ([]Employee, error)
}
