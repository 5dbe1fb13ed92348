// Package entities provides core data structures for dungeon-api.
package entities

// Position represents a cell coordinate on the dungeon grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RoomCategory identifies the role of a room within a dungeon
type RoomCategory string

// Room categories
const (
	CategoryStart    RoomCategory = "start"
	CategoryNormal   RoomCategory = "normal"
	CategoryBoss     RoomCategory = "boss"
	CategoryTreasure RoomCategory = "treasure"
	CategoryShop     RoomCategory = "shop"
	CategorySecret   RoomCategory = "secret"
)

// String returns the string representation of the category
func (c RoomCategory) String() string {
	return string(c)
}

// Valid reports whether the category is one of the known room categories
func (c RoomCategory) Valid() bool {
	switch c {
	case CategoryStart, CategoryNormal, CategoryBoss, CategoryTreasure, CategoryShop, CategorySecret:
		return true
	}
	return false
}

// RoomState is the lifecycle state of an explorable room
type RoomState string

// Room lifecycle states, strictly ordered
const (
	RoomStateUnvisited RoomState = "unvisited"
	RoomStateVisited   RoomState = "visited"
	RoomStateCleared   RoomState = "cleared"
	RoomStateCompleted RoomState = "completed"
)

// Rank returns the position of the state in the lifecycle order.
// Higher ranks are later states; unknown states rank below unvisited.
func (s RoomState) Rank() int {
	switch s {
	case RoomStateUnvisited:
		return 0
	case RoomStateVisited:
		return 1
	case RoomStateCleared:
		return 2
	case RoomStateCompleted:
		return 3
	default:
		return -1
	}
}

// SpawnKind identifies what a spawn point produces
type SpawnKind string

// Spawn kinds
const (
	SpawnEnemy        SpawnKind = "enemy"
	SpawnItem         SpawnKind = "item"
	SpawnInteractable SpawnKind = "interactable"
)

// SpawnPoint is a template slot inside a room that may produce content
// when the room is materialized
type SpawnPoint struct {
	ID     string    `json:"id"`
	Kind   SpawnKind `json:"kind"`
	Offset Position  `json:"offset"` // Relative to the room's top-left cell
	Chance float64   `json:"chance"` // 0.0-1.0 probability of activating
}

// RoomTemplate is an immutable room definition supplied by configuration
type RoomTemplate struct {
	ID          string       `json:"id"`
	Category    RoomCategory `json:"category"`
	Width       int          `json:"width"`  // Footprint width in cells
	Height      int          `json:"height"` // Footprint height in cells
	SpawnPoints []SpawnPoint `json:"spawn_points,omitempty"`
}

// LevelData is the generation configuration for one dungeon level
type LevelData struct {
	GridWidth  int            `json:"grid_width"`
	GridHeight int            `json:"grid_height"`
	MinRooms   int            `json:"min_rooms"` // Normal-room count lower bound
	MaxRooms   int            `json:"max_rooms"` // Normal-room count upper bound
	Templates  []RoomTemplate `json:"templates"`
}

// TemplatesByCategory groups the level's templates by room category
func (l *LevelData) TemplatesByCategory() map[RoomCategory][]RoomTemplate {
	byCategory := make(map[RoomCategory][]RoomTemplate)
	for _, t := range l.Templates {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	return byCategory
}

// PlacementData is the serialized form of an accepted placement
type PlacementData struct {
	TemplateID string       `json:"template_id"`
	Category   RoomCategory `json:"category"`
	Position   Position     `json:"position"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Order      int          `json:"order"`
	Priority   float64      `json:"priority"`
}

// SpawnData records one resolved spawn inside a materialized room
type SpawnData struct {
	SpawnPointID string    `json:"spawn_point_id"`
	Kind         SpawnKind `json:"kind"`
	Position     Position  `json:"position"` // Absolute grid position
	Defeated     bool      `json:"defeated,omitempty"`
	Collected    bool      `json:"collected,omitempty"`
}

// RoomData is the serialized form of a live room
type RoomData struct {
	Index     int           `json:"index"` // Stable handle within the layout
	Placement PlacementData `json:"placement"`
	State     RoomState     `json:"state"`
	Active    bool          `json:"active"`
	Spawns    []SpawnData   `json:"spawns,omitempty"`
}

// CorridorData describes the corridor joining two connected rooms
type CorridorData struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// ConnectionData is an undirected edge between two rooms, stored once
// with A < B
type ConnectionData struct {
	A        int          `json:"a"`
	B        int          `json:"b"`
	Corridor CorridorData `json:"corridor"`
}

// LayoutData is the serialized form of a generated dungeon layout
type LayoutData struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Seed        int64            `json:"seed"`
	GridWidth   int              `json:"grid_width"`
	GridHeight  int              `json:"grid_height"`
	StartIndex  int              `json:"start_index"`
	Rooms       []RoomData       `json:"rooms"`
	Connections []ConnectionData `json:"connections"`
	CreatedAt   int64            `json:"created_at"`
	UpdatedAt   int64            `json:"updated_at"`
}
