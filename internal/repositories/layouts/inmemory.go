package layouts

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Useful for local development and tests that don't need Redis.
type InMemoryRepository struct {
	clock clock.Clock

	mu    sync.RWMutex
	store map[string]*entities.LayoutData
}

// InMemoryConfig contains configuration for the in-memory layout repository.
type InMemoryConfig struct {
	Clock clock.Clock
}

// NewInMemory creates a new in-memory repository
func NewInMemory(cfg *InMemoryConfig) *InMemoryRepository {
	c := clock.Clock(clock.New())
	if cfg != nil && cfg.Clock != nil {
		c = cfg.Clock
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*entities.LayoutData),
	}
}

// Create stores a newly generated layout
func (r *InMemoryRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}
	if input.Layout.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Layout.ID]; exists {
		return nil, errors.AlreadyExistsf("layout with ID %s already exists", input.Layout.ID)
	}

	now := r.clock.Now().Unix()
	layout := cloneLayout(input.Layout)
	layout.CreatedAt = now
	layout.UpdatedAt = now
	r.store[layout.ID] = layout

	return &CreateOutput{Layout: cloneLayout(layout)}, nil
}

// Get retrieves a layout by ID
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	layout, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("layout with ID %s not found", input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Layout: cloneLayout(layout)}, nil
}

// Update replaces a stored layout
func (r *InMemoryRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.store[input.Layout.ID]
	if !exists {
		return nil, errors.NotFoundf("layout with ID %s not found", input.Layout.ID)
	}

	layout := cloneLayout(input.Layout)
	layout.CreatedAt = existing.CreatedAt
	layout.UpdatedAt = r.clock.Now().Unix()
	r.store[layout.ID] = layout

	return &UpdateOutput{Layout: cloneLayout(layout)}, nil
}

// Delete removes a layout by ID
func (r *InMemoryRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("layout with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// ListByOwner returns all layouts stored for an owner, ordered by ID
func (r *InMemoryRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var layouts []*entities.LayoutData
	for _, layout := range r.store {
		if layout.OwnerID == input.OwnerID {
			layouts = append(layouts, cloneLayout(layout))
		}
	}
	sort.Slice(layouts, func(i, j int) bool { return layouts[i].ID < layouts[j].ID })

	return &ListByOwnerOutput{Layouts: layouts}, nil
}

// cloneLayout deep-copies a layout so callers never share slices with
// the stored value
func cloneLayout(layout *entities.LayoutData) *entities.LayoutData {
	out := *layout

	out.Rooms = make([]entities.RoomData, len(layout.Rooms))
	for i, room := range layout.Rooms {
		out.Rooms[i] = room
		out.Rooms[i].Spawns = make([]entities.SpawnData, len(room.Spawns))
		copy(out.Rooms[i].Spawns, room.Spawns)
	}

	out.Connections = make([]entities.ConnectionData, len(layout.Connections))
	copy(out.Connections, layout.Connections)

	return &out
}
