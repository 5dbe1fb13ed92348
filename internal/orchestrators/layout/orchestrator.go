// Package layout implements the orchestrator for dungeon layout
// generation and room exploration.
package layout

//go:generate mockgen -destination=mock/mock_service.go -package=layoutmock github.com/KirkDiggler/dungeon-api/internal/orchestrators/layout Service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dungeon-api/internal/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/layouts"
)

// Service defines the interface for layout operations
type Service interface {
	// GenerateLayout runs the placement pipeline and persists the result
	GenerateLayout(ctx context.Context, input *GenerateLayoutInput) (*GenerateLayoutOutput, error)

	// GetLayout retrieves a stored layout by ID
	GetLayout(ctx context.Context, input *GetLayoutInput) (*GetLayoutOutput, error)

	// ListLayouts returns all layouts stored for an owner
	ListLayouts(ctx context.Context, input *ListLayoutsInput) (*ListLayoutsOutput, error)

	// DeleteLayout removes a stored layout
	DeleteLayout(ctx context.Context, input *DeleteLayoutInput) (*DeleteLayoutOutput, error)

	// EnterRoom moves the player into a room, advancing its lifecycle
	// state on first entry
	EnterRoom(ctx context.Context, input *EnterRoomInput) (*EnterRoomOutput, error)

	// ExitRoom clears the room's active flag
	ExitRoom(ctx context.Context, input *ExitRoomInput) (*ExitRoomOutput, error)

	// RecordEnemyDefeated marks an enemy spawn defeated, clearing the
	// room when it was the last one
	RecordEnemyDefeated(ctx context.Context, input *RecordEnemyDefeatedInput) (*RecordEnemyDefeatedOutput, error)

	// CollectReward marks an item spawn collected, completing the room
	// when it was the last one in a cleared room
	CollectReward(ctx context.Context, input *CollectRewardInput) (*CollectRewardOutput, error)
}

// Config holds the dependencies for the layout orchestrator
type Config struct {
	LayoutRepo  layouts.Repository
	IDGenerator idgen.Generator
	EventBus    events.EventBus
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.LayoutRepo == nil {
		vb.RequiredField("LayoutRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     layouts.Repository
	idGen    idgen.Generator
	eventBus events.EventBus
	clock    clock.Clock

	// Per-layout locks serialize the load-modify-save cycle so
	// concurrent gameplay events on one layout never lose updates
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator creates a new layout orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		repo:     cfg.LayoutRepo,
		idGen:    cfg.IDGenerator,
		eventBus: cfg.EventBus,
		clock:    c,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// GenerateLayout runs the placement pipeline and persists the result
func (o *orchestrator) GenerateLayout(ctx context.Context, input *GenerateLayoutInput) (*GenerateLayoutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	seed := input.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}

	generator, err := dungeon.NewLayoutGenerator(&dungeon.GeneratorConfig{
		Level: input.Level,
		Rand:  rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, err
	}

	result, err := generator.Generate()
	if err != nil {
		return nil, err
	}

	data := result.Layout.ToData()
	data.ID = o.idGen.Generate()
	data.OwnerID = input.OwnerID
	data.Seed = seed

	created, err := o.repo.Create(ctx, layouts.CreateInput{Layout: data})
	if err != nil {
		return nil, err
	}

	slog.Info("layout generated",
		"layout_id", created.Layout.ID,
		"owner_id", input.OwnerID,
		"seed", seed,
		"rooms", len(created.Layout.Rooms),
	)

	return &GenerateLayoutOutput{
		Layout:   created.Layout,
		Warnings: result.Warnings,
	}, nil
}

// GetLayout retrieves a stored layout by ID
func (o *orchestrator) GetLayout(ctx context.Context, input *GetLayoutInput) (*GetLayoutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output, err := o.repo.Get(ctx, layouts.GetInput{ID: input.LayoutID})
	if err != nil {
		return nil, err
	}
	return &GetLayoutOutput{Layout: output.Layout}, nil
}

// ListLayouts returns all layouts stored for an owner
func (o *orchestrator) ListLayouts(ctx context.Context, input *ListLayoutsInput) (*ListLayoutsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output, err := o.repo.ListByOwner(ctx, layouts.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}
	return &ListLayoutsOutput{Layouts: output.Layouts}, nil
}

// DeleteLayout removes a stored layout
func (o *orchestrator) DeleteLayout(ctx context.Context, input *DeleteLayoutInput) (*DeleteLayoutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.repo.Delete(ctx, layouts.DeleteInput{ID: input.LayoutID}); err != nil {
		return nil, err
	}
	return &DeleteLayoutOutput{}, nil
}

// EnterRoom moves the player into a room
func (o *orchestrator) EnterRoom(ctx context.Context, input *EnterRoomInput) (*EnterRoomOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	room, transitions, err := o.withRoom(ctx, input.LayoutID, input.RoomIndex,
		func(layout *dungeon.DungeonLayout, room *dungeon.RoomInstance) ([]dungeon.Transition, error) {
			// Only one room is active at a time
			for _, other := range layout.GetAllRooms() {
				if other.Index() != room.Index() && other.Active() {
					other.Exit()
				}
			}
			return room.Enter(), nil
		})
	if err != nil {
		return nil, err
	}

	return &EnterRoomOutput{Room: room, Events: eventTypes(transitions)}, nil
}

// ExitRoom clears the room's active flag
func (o *orchestrator) ExitRoom(ctx context.Context, input *ExitRoomInput) (*ExitRoomOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	room, _, err := o.withRoom(ctx, input.LayoutID, input.RoomIndex,
		func(_ *dungeon.DungeonLayout, room *dungeon.RoomInstance) ([]dungeon.Transition, error) {
			room.Exit()
			return nil, nil
		})
	if err != nil {
		return nil, err
	}

	return &ExitRoomOutput{Room: room}, nil
}

// RecordEnemyDefeated marks an enemy spawn defeated
func (o *orchestrator) RecordEnemyDefeated(ctx context.Context, input *RecordEnemyDefeatedInput) (*RecordEnemyDefeatedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	room, transitions, err := o.withRoom(ctx, input.LayoutID, input.RoomIndex,
		func(_ *dungeon.DungeonLayout, room *dungeon.RoomInstance) ([]dungeon.Transition, error) {
			return room.RecordEnemyDefeated(input.SpawnPointID)
		})
	if err != nil {
		return nil, err
	}

	return &RecordEnemyDefeatedOutput{Room: room, Events: eventTypes(transitions)}, nil
}

// CollectReward marks an item spawn collected
func (o *orchestrator) CollectReward(ctx context.Context, input *CollectRewardInput) (*CollectRewardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	room, transitions, err := o.withRoom(ctx, input.LayoutID, input.RoomIndex,
		func(_ *dungeon.DungeonLayout, room *dungeon.RoomInstance) ([]dungeon.Transition, error) {
			return room.CollectReward(input.SpawnPointID)
		})
	if err != nil {
		return nil, err
	}

	return &CollectRewardOutput{Room: room, Events: eventTypes(transitions)}, nil
}

// withRoom runs one gameplay mutation under the layout's lock: load,
// apply, save, then publish the produced transitions. The returned room
// data reflects the saved state.
func (o *orchestrator) withRoom(
	ctx context.Context,
	layoutID string,
	roomIndex int,
	apply func(*dungeon.DungeonLayout, *dungeon.RoomInstance) ([]dungeon.Transition, error),
) (*entities.RoomData, []dungeon.Transition, error) {
	if layoutID == "" {
		return nil, nil, errors.InvalidArgument("layout ID is required")
	}

	lock := o.layoutLock(layoutID)
	lock.Lock()
	defer lock.Unlock()

	getOutput, err := o.repo.Get(ctx, layouts.GetInput{ID: layoutID})
	if err != nil {
		return nil, nil, err
	}

	layout, err := dungeon.LayoutFromData(getOutput.Layout)
	if err != nil {
		return nil, nil, errors.Wrap(err, "stored layout is corrupt")
	}

	room, err := layout.Room(roomIndex)
	if err != nil {
		return nil, nil, err
	}

	transitions, err := apply(layout, room)
	if err != nil {
		return nil, nil, err
	}

	data := layout.ToData()
	data.ID = getOutput.Layout.ID
	data.OwnerID = getOutput.Layout.OwnerID
	data.Seed = getOutput.Layout.Seed
	data.CreatedAt = getOutput.Layout.CreatedAt

	if _, err := o.repo.Update(ctx, layouts.UpdateInput{Layout: data}); err != nil {
		return nil, nil, err
	}

	o.publishTransitions(ctx, layoutID, layout, transitions)

	roomData := room.ToData()
	return &roomData, transitions, nil
}

// publishTransitions emits one event per transition in order. Publish
// failures are logged, not returned: the state change is already saved.
func (o *orchestrator) publishTransitions(ctx context.Context, layoutID string, layout *dungeon.DungeonLayout, transitions []dungeon.Transition) {
	for _, t := range transitions {
		room, err := layout.Room(t.RoomIndex)
		if err != nil {
			continue
		}
		event := events.NewGameEvent(t.EventType, room, nil)
		if err := o.eventBus.Publish(ctx, event); err != nil {
			slog.Warn("failed to publish room event",
				"layout_id", layoutID,
				"room_index", t.RoomIndex,
				"event_type", t.EventType,
				"error", err,
			)
		}
	}
}

func (o *orchestrator) layoutLock(layoutID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	lock, ok := o.locks[layoutID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[layoutID] = lock
	}
	return lock
}

func eventTypes(transitions []dungeon.Transition) []string {
	types := make([]string, 0, len(transitions))
	for _, t := range transitions {
		types = append(types, t.EventType)
	}
	return types
}
