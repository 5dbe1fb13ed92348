// Package layouts defines the interface for dungeon layout persistence
package layouts

//go:generate mockgen -destination=mock/mock_repository.go -package=layoutsmock github.com/KirkDiggler/dungeon-api/internal/repositories/layouts Repository

import (
	"context"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// Repository defines the interface for dungeon layout persistence
type Repository interface {
	// Create stores a newly generated layout
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the layout ID is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a layout by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the layout doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a stored layout after gameplay state changes
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the layout doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a layout by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the layout doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner returns all layouts stored for an owner
	// Returns errors.InvalidArgument for empty owner IDs
	// Returns errors.Internal for storage failures
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for storing a layout
type CreateInput struct {
	Layout *entities.LayoutData
}

// CreateOutput defines the output for storing a layout
type CreateOutput struct {
	Layout *entities.LayoutData
}

// GetInput defines the input for getting a layout
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a layout
type GetOutput struct {
	Layout *entities.LayoutData
}

// UpdateInput defines the input for updating a layout
type UpdateInput struct {
	Layout *entities.LayoutData
}

// UpdateOutput defines the output for updating a layout
type UpdateOutput struct {
	Layout *entities.LayoutData
}

// DeleteInput defines the input for deleting a layout
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a layout
type DeleteOutput struct {
	// Empty for now, can be extended later
}

// ListByOwnerInput defines the input for listing an owner's layouts
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's layouts
type ListByOwnerOutput struct {
	Layouts []*entities.LayoutData
}
