package pets

import "time"

// Pet is the single record kind this service manages. Type and Name are
// free-form strings ("dog", "Alexander"); both are required on create.
type Pet struct {
	ID string

	Type string
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}
