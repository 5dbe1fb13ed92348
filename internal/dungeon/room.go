package dungeon

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Rooms are published as event sources, so they satisfy core.Entity
var _ core.Entity = (*RoomInstance)(nil)

// Room lifecycle event types published on the event bus. For any one
// room they are observed in lifecycle order: entered, then cleared,
// then completed.
const (
	EventRoomEntered   = "dungeon.room.entered"
	EventRoomCleared   = "dungeon.room.cleared"
	EventRoomCompleted = "dungeon.room.completed"
)

// Transition records one state-machine notification produced by a
// gameplay event, in the order it must be published
type Transition struct {
	RoomIndex int
	EventType string
}

// RoomInstance is the live, explorable counterpart of an accepted
// placement. It owns a strictly forward state machine (unvisited,
// visited, cleared, completed) and the bookkeeping for content spawned
// inside the room. The layout exclusively owns its rooms; instances
// hold only copied placement data.
//
// All mutating methods serialize on an internal mutex so gameplay
// events for the same room never interleave.
type RoomInstance struct {
	index     int
	placement entities.PlacementData

	mu     sync.Mutex
	state  entities.RoomState
	active bool
	spawns []entities.SpawnData

	// Rooms that spawned no enemies are cleared on first entry
	// rather than by enemy defeat
	clearOnVisit bool
}

func newRoomInstance(index int, placement entities.PlacementData, spawns []entities.SpawnData) *RoomInstance {
	r := &RoomInstance{
		index:     index,
		placement: placement,
		state:     entities.RoomStateUnvisited,
		spawns:    spawns,
	}
	r.clearOnVisit = r.enemyCount() == 0
	return r
}

// GetID implements core.Entity
func (r *RoomInstance) GetID() string {
	return fmt.Sprintf("room_%d", r.index)
}

// GetType implements core.Entity
func (r *RoomInstance) GetType() string {
	return "dungeon_room"
}

// Index returns the room's stable handle within its layout
func (r *RoomInstance) Index() int {
	return r.index
}

// Placement returns the copied placement data the room was built from
func (r *RoomInstance) Placement() entities.PlacementData {
	return r.placement
}

// Category returns the room's category
func (r *RoomInstance) Category() entities.RoomCategory {
	return r.placement.Category
}

// State returns the current lifecycle state
func (r *RoomInstance) State() entities.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Active reports whether the player is currently inside the room
func (r *RoomInstance) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Spawns returns a copy of the room's spawn bookkeeping
func (r *RoomInstance) Spawns() []entities.SpawnData {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.SpawnData, len(r.spawns))
	copy(out, r.spawns)
	return out
}

// Contains reports whether the room's footprint covers the cell
func (r *RoomInstance) Contains(pos entities.Position) bool {
	return pos.X >= r.placement.Position.X && pos.X < r.placement.Position.X+r.placement.Width &&
		pos.Y >= r.placement.Position.Y && pos.Y < r.placement.Position.Y+r.placement.Height
}

// Enter marks the room active and, on first entry, advances unvisited
// to visited. Rooms that spawned no enemies clear immediately after the
// first entry so the entered notification still precedes cleared.
func (r *RoomInstance) Enter() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = true

	var transitions []Transition
	if r.state == entities.RoomStateUnvisited {
		r.state = entities.RoomStateVisited
		transitions = append(transitions, Transition{RoomIndex: r.index, EventType: EventRoomEntered})

		if r.clearOnVisit {
			r.state = entities.RoomStateCleared
			transitions = append(transitions, Transition{RoomIndex: r.index, EventType: EventRoomCleared})
		}
	}
	return transitions
}

// Exit clears the active flag
func (r *RoomInstance) Exit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = false
}

// RecordEnemyDefeated marks the enemy spawn defeated. Defeating the
// last enemy advances visited to cleared; rooms that never spawned an
// enemy are not cleared through this path. Defeats are rejected until
// the room has been entered, otherwise a room whose enemies all died
// pre-entry could never clear.
func (r *RoomInstance) RecordEnemyDefeated(spawnPointID string) ([]Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == entities.RoomStateUnvisited {
		return nil, errors.FailedPreconditionf("room %d has not been entered", r.index)
	}

	spawn := r.findSpawn(spawnPointID, entities.SpawnEnemy)
	if spawn == nil {
		return nil, errors.NotFoundf("no enemy spawn %q in room %d", spawnPointID, r.index)
	}
	if spawn.Defeated {
		return nil, errors.FailedPreconditionf("enemy spawn %q already defeated", spawnPointID)
	}
	spawn.Defeated = true

	if r.state == entities.RoomStateVisited && r.enemyCount() > 0 && r.remainingEnemies() == 0 {
		r.state = entities.RoomStateCleared
		return []Transition{{RoomIndex: r.index, EventType: EventRoomCleared}}, nil
	}
	return nil, nil
}

// CollectReward marks the item spawn collected. Collecting the last
// outstanding reward while cleared advances cleared to completed.
// Like defeats, collection requires the room to have been entered.
func (r *RoomInstance) CollectReward(spawnPointID string) ([]Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == entities.RoomStateUnvisited {
		return nil, errors.FailedPreconditionf("room %d has not been entered", r.index)
	}

	spawn := r.findSpawn(spawnPointID, entities.SpawnItem)
	if spawn == nil {
		return nil, errors.NotFoundf("no reward spawn %q in room %d", spawnPointID, r.index)
	}
	if spawn.Collected {
		return nil, errors.FailedPreconditionf("reward spawn %q already collected", spawnPointID)
	}
	spawn.Collected = true

	if r.state == entities.RoomStateCleared && r.remainingRewards() == 0 {
		r.state = entities.RoomStateCompleted
		return []Transition{{RoomIndex: r.index, EventType: EventRoomCompleted}}, nil
	}
	return nil, nil
}

// ToData converts the room to its serialized form
func (r *RoomInstance) ToData() entities.RoomData {
	r.mu.Lock()
	defer r.mu.Unlock()

	spawns := make([]entities.SpawnData, len(r.spawns))
	copy(spawns, r.spawns)

	return entities.RoomData{
		Index:     r.index,
		Placement: r.placement,
		State:     r.state,
		Active:    r.active,
		Spawns:    spawns,
	}
}

func roomFromData(data entities.RoomData) *RoomInstance {
	spawns := make([]entities.SpawnData, len(data.Spawns))
	copy(spawns, data.Spawns)

	r := &RoomInstance{
		index:     data.Index,
		placement: data.Placement,
		state:     data.State,
		active:    data.Active,
		spawns:    spawns,
	}
	r.clearOnVisit = r.enemyCount() == 0
	return r
}

func (r *RoomInstance) findSpawn(spawnPointID string, kind entities.SpawnKind) *entities.SpawnData {
	for i := range r.spawns {
		if r.spawns[i].SpawnPointID == spawnPointID && r.spawns[i].Kind == kind {
			return &r.spawns[i]
		}
	}
	return nil
}

func (r *RoomInstance) enemyCount() int {
	n := 0
	for i := range r.spawns {
		if r.spawns[i].Kind == entities.SpawnEnemy {
			n++
		}
	}
	return n
}

func (r *RoomInstance) remainingEnemies() int {
	n := 0
	for i := range r.spawns {
		if r.spawns[i].Kind == entities.SpawnEnemy && !r.spawns[i].Defeated {
			n++
		}
	}
	return n
}

func (r *RoomInstance) remainingRewards() int {
	n := 0
	for i := range r.spawns {
		if r.spawns[i].Kind == entities.SpawnItem && !r.spawns[i].Collected {
			n++
		}
	}
	return n
}
