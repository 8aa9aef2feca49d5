package pets

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when an id matches no pet. Handlers map it to
	// 404 with an empty body, never with diagnostic text.
	ErrNotFound = errors.New("pet not found")

	// ErrInvalidInput is returned when a create or update would leave a pet
	// without its required fields. Handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")
)

// Repository is the storage port. Update and Delete are conditional writes:
// they return ErrNotFound when the id matched nothing, so callers can tell
// "nothing matched" from "mutation succeeded" without a second round trip.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
}
