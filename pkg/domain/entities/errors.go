package entities

import "fmt"

// DataIntegrityError reports a malformed or inconsistent input record.
// It is raised at the ingestion seam, before any model is built, and
// must be fixed at the data source rather than retried.
type DataIntegrityError struct {
	Entity string // "item", "supplier" or "pricing"
	ID     string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s %s: %s", e.Entity, e.ID, e.Reason)
}
