package layout

import (
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// GenerateLayoutInput defines the input for generating a layout
type GenerateLayoutInput struct {
	// OwnerID identifies who the layout belongs to. Required.
	OwnerID string

	// Level describes the grid and the room templates to draw from.
	// Required.
	Level *entities.LevelData

	// Seed drives all randomness for the run. A zero seed gets
	// replaced with one derived from the current time.
	Seed int64
}

// GenerateLayoutOutput defines the output for generating a layout
type GenerateLayoutOutput struct {
	Layout *entities.LayoutData

	// Warnings lists non-fatal generation shortfalls, such as an
	// omitted special room
	Warnings []string
}

// GetLayoutInput defines the input for getting a layout
type GetLayoutInput struct {
	LayoutID string
}

// GetLayoutOutput defines the output for getting a layout
type GetLayoutOutput struct {
	Layout *entities.LayoutData
}

// ListLayoutsInput defines the input for listing an owner's layouts
type ListLayoutsInput struct {
	OwnerID string
}

// ListLayoutsOutput defines the output for listing an owner's layouts
type ListLayoutsOutput struct {
	Layouts []*entities.LayoutData
}

// DeleteLayoutInput defines the input for deleting a layout
type DeleteLayoutInput struct {
	LayoutID string
}

// DeleteLayoutOutput defines the output for deleting a layout
type DeleteLayoutOutput struct {
	// Empty for now, can be extended later
}

// EnterRoomInput defines the input for entering a room
type EnterRoomInput struct {
	LayoutID  string
	RoomIndex int
}

// EnterRoomOutput defines the output for entering a room
type EnterRoomOutput struct {
	Room *entities.RoomData

	// Events lists the lifecycle event types this entry produced, in
	// publish order
	Events []string
}

// ExitRoomInput defines the input for exiting a room
type ExitRoomInput struct {
	LayoutID  string
	RoomIndex int
}

// ExitRoomOutput defines the output for exiting a room
type ExitRoomOutput struct {
	Room *entities.RoomData
}

// RecordEnemyDefeatedInput defines the input for recording an enemy defeat
type RecordEnemyDefeatedInput struct {
	LayoutID     string
	RoomIndex    int
	SpawnPointID string
}

// RecordEnemyDefeatedOutput defines the output for recording an enemy defeat
type RecordEnemyDefeatedOutput struct {
	Room   *entities.RoomData
	Events []string
}

// CollectRewardInput defines the input for collecting a reward
type CollectRewardInput struct {
	LayoutID     string
	RoomIndex    int
	SpawnPointID string
}

// CollectRewardOutput defines the output for collecting a reward
type CollectRewardOutput struct {
	Room   *entities.RoomData
	Events []string
}
