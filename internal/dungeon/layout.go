package dungeon

import (
	"sort"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// DungeonLayout is the finalized set of rooms plus the connectivity
// relation between them. Rooms live in an arena addressed by stable
// integer handles; connection edges are stored as index pairs, so the
// graph has no reference cycles and serializes trivially.
type DungeonLayout struct {
	gridWidth  int
	gridHeight int
	startIndex int

	rooms []*RoomInstance

	// edges[a][b] holds the corridor for the undirected edge {a,b};
	// both directions are always present together
	edges map[int]map[int]entities.CorridorData
}

// NewDungeonLayout creates an empty layout for a grid of the given size
func NewDungeonLayout(gridWidth, gridHeight int) *DungeonLayout {
	return &DungeonLayout{
		gridWidth:  gridWidth,
		gridHeight: gridHeight,
		startIndex: -1,
		edges:      make(map[int]map[int]entities.CorridorData),
	}
}

// AddRoom materializes an accepted placement into a room instance and
// returns its handle. The first start-category room becomes the
// layout's start room.
func (l *DungeonLayout) AddRoom(placement entities.PlacementData, spawns []entities.SpawnData) *RoomInstance {
	room := newRoomInstance(len(l.rooms), placement, spawns)
	l.rooms = append(l.rooms, room)

	if placement.Category == entities.CategoryStart && l.startIndex < 0 {
		l.startIndex = room.index
	}
	return room
}

// Room returns the room with the given handle
func (l *DungeonLayout) Room(index int) (*RoomInstance, error) {
	if index < 0 || index >= len(l.rooms) {
		return nil, errors.NotFoundf("no room with index %d", index)
	}
	return l.rooms[index], nil
}

// GetStartRoom returns the start room, or nil if none was added
func (l *DungeonLayout) GetStartRoom() *RoomInstance {
	if l.startIndex < 0 {
		return nil
	}
	return l.rooms[l.startIndex]
}

// GetAllRooms returns the rooms in handle order
func (l *DungeonLayout) GetAllRooms() []*RoomInstance {
	out := make([]*RoomInstance, len(l.rooms))
	copy(out, l.rooms)
	return out
}

// GetRoomAt returns the room whose footprint covers the cell, or nil
func (l *DungeonLayout) GetRoomAt(pos entities.Position) *RoomInstance {
	for _, room := range l.rooms {
		if room.Contains(pos) {
			return room
		}
	}
	return nil
}

// ConnectRooms registers the undirected edge {a,b} with its corridor.
// Connecting is symmetric and idempotent; reconnecting an existing pair
// keeps the original corridor.
func (l *DungeonLayout) ConnectRooms(a, b int, corridor entities.CorridorData) error {
	if a == b {
		return errors.InvalidArgumentf("cannot connect room %d to itself", a)
	}
	if _, err := l.Room(a); err != nil {
		return err
	}
	if _, err := l.Room(b); err != nil {
		return err
	}

	if l.IsConnectedTo(a, b) {
		return nil
	}

	if l.edges[a] == nil {
		l.edges[a] = make(map[int]entities.CorridorData)
	}
	if l.edges[b] == nil {
		l.edges[b] = make(map[int]entities.CorridorData)
	}
	l.edges[a][b] = corridor
	l.edges[b][a] = entities.CorridorData{From: corridor.To, To: corridor.From}
	return nil
}

// DisconnectRooms removes the edge {a,b} in both directions
func (l *DungeonLayout) DisconnectRooms(a, b int) {
	delete(l.edges[a], b)
	delete(l.edges[b], a)
}

// IsConnectedTo reports whether rooms a and b share an edge
func (l *DungeonLayout) IsConnectedTo(a, b int) bool {
	_, ok := l.edges[a][b]
	return ok
}

// Neighbors returns the handles of rooms sharing an edge with index,
// in ascending order
func (l *DungeonLayout) Neighbors(index int) []int {
	neighbors := make([]int, 0, len(l.edges[index]))
	for n := range l.edges[index] {
		neighbors = append(neighbors, n)
	}
	sort.Ints(neighbors)
	return neighbors
}

// ConnectionCount returns the number of edges at a room
func (l *DungeonLayout) ConnectionCount(index int) int {
	return len(l.edges[index])
}

// ReachableFromStart returns the set of room handles reachable from the
// start room by following edges, including the start room itself
func (l *DungeonLayout) ReachableFromStart() map[int]bool {
	reached := make(map[int]bool)
	if l.startIndex < 0 {
		return reached
	}

	stack := []int{l.startIndex}
	reached[l.startIndex] = true
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for neighbor := range l.edges[current] {
			if !reached[neighbor] {
				reached[neighbor] = true
				stack = append(stack, neighbor)
			}
		}
	}
	return reached
}

// ToData converts the layout to its serialized form. Identity fields
// (ID, owner, seed, timestamps) are filled by the caller.
func (l *DungeonLayout) ToData() *entities.LayoutData {
	rooms := make([]entities.RoomData, len(l.rooms))
	for i, room := range l.rooms {
		rooms[i] = room.ToData()
	}

	// Store each undirected edge once, with a < b
	var connections []entities.ConnectionData
	for a, peers := range l.edges {
		for b, corridor := range peers {
			if a < b {
				connections = append(connections, entities.ConnectionData{A: a, B: b, Corridor: corridor})
			}
		}
	}
	sort.Slice(connections, func(i, j int) bool {
		if connections[i].A != connections[j].A {
			return connections[i].A < connections[j].A
		}
		return connections[i].B < connections[j].B
	})

	return &entities.LayoutData{
		GridWidth:   l.gridWidth,
		GridHeight:  l.gridHeight,
		StartIndex:  l.startIndex,
		Rooms:       rooms,
		Connections: connections,
	}
}

// LayoutFromData reconstructs a layout from its serialized form
func LayoutFromData(data *entities.LayoutData) (*DungeonLayout, error) {
	if data == nil {
		return nil, errors.InvalidArgument("layout data is required")
	}

	l := NewDungeonLayout(data.GridWidth, data.GridHeight)
	for i, roomData := range data.Rooms {
		if roomData.Index != i {
			return nil, errors.InvalidArgumentf("room at slot %d has index %d", i, roomData.Index)
		}
		l.rooms = append(l.rooms, roomFromData(roomData))
	}
	l.startIndex = data.StartIndex
	if l.startIndex < -1 || l.startIndex >= len(l.rooms) {
		return nil, errors.InvalidArgumentf("start index %d out of range", l.startIndex)
	}

	for _, conn := range data.Connections {
		if err := l.ConnectRooms(conn.A, conn.B, conn.Corridor); err != nil {
			return nil, errors.Wrapf(err, "invalid connection %d-%d", conn.A, conn.B)
		}
	}
	return l, nil
}
