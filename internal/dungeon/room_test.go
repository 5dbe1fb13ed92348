package dungeon

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

func testPlacementData(category entities.RoomCategory) entities.PlacementData {
	return entities.PlacementData{
		TemplateID: "tmpl",
		Category:   category,
		Position:   entities.Position{X: 3, Y: 3},
		Width:      3,
		Height:     3,
	}
}

func enemySpawn(id string) entities.SpawnData {
	return entities.SpawnData{SpawnPointID: id, Kind: entities.SpawnEnemy, Position: entities.Position{X: 4, Y: 4}}
}

func itemSpawn(id string) entities.SpawnData {
	return entities.SpawnData{SpawnPointID: id, Kind: entities.SpawnItem, Position: entities.Position{X: 5, Y: 4}}
}

type RoomInstanceTestSuite struct {
	suite.Suite
}

func TestRoomInstanceSuite(t *testing.T) {
	suite.Run(t, new(RoomInstanceTestSuite))
}

func (s *RoomInstanceTestSuite) TestEntity() {
	room := newRoomInstance(3, testPlacementData(entities.CategoryNormal), nil)
	s.Assert().Equal("room_3", room.GetID())
	s.Assert().Equal("dungeon_room", room.GetType())
	s.Assert().Equal(3, room.Index())
}

func (s *RoomInstanceTestSuite) TestFirstEntryMarksVisited() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1")})

	s.Require().Equal(entities.RoomStateUnvisited, room.State())
	s.Assert().False(room.Active())

	transitions := room.Enter()
	s.Require().Len(transitions, 1)
	s.Assert().Equal(EventRoomEntered, transitions[0].EventType)
	s.Assert().Equal(entities.RoomStateVisited, room.State())
	s.Assert().True(room.Active())

	// Re-entry only toggles the active flag
	room.Exit()
	s.Assert().False(room.Active())
	transitions = room.Enter()
	s.Assert().Empty(transitions)
	s.Assert().True(room.Active())
	s.Assert().Equal(entities.RoomStateVisited, room.State())
}

func (s *RoomInstanceTestSuite) TestContentFreeRoomClearsOnFirstEntry() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryShop), nil)

	transitions := room.Enter()
	s.Require().Len(transitions, 2)
	s.Assert().Equal(EventRoomEntered, transitions[0].EventType)
	s.Assert().Equal(EventRoomCleared, transitions[1].EventType)
	s.Assert().Equal(entities.RoomStateCleared, room.State())
}

func (s *RoomInstanceTestSuite) TestEnemyDefeatsClearRoom() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1"), enemySpawn("e2")})
	room.Enter()

	transitions, err := room.RecordEnemyDefeated("e1")
	s.Require().NoError(err)
	s.Assert().Empty(transitions)
	s.Assert().Equal(entities.RoomStateVisited, room.State())

	transitions, err = room.RecordEnemyDefeated("e2")
	s.Require().NoError(err)
	s.Require().Len(transitions, 1)
	s.Assert().Equal(EventRoomCleared, transitions[0].EventType)
	s.Assert().Equal(entities.RoomStateCleared, room.State())
}

func (s *RoomInstanceTestSuite) TestEnemyDefeatErrors() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1")})
	room.Enter()

	_, err := room.RecordEnemyDefeated("missing")
	s.Assert().True(errors.IsNotFound(err))

	_, err = room.RecordEnemyDefeated("e1")
	s.Require().NoError(err)

	_, err = room.RecordEnemyDefeated("e1")
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *RoomInstanceTestSuite) TestGameplayEventsRejectedBeforeEntry() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1"), itemSpawn("r1")})

	_, err := room.RecordEnemyDefeated("e1")
	s.Assert().True(errors.IsFailedPrecondition(err))

	_, err = room.CollectReward("r1")
	s.Assert().True(errors.IsFailedPrecondition(err))

	// The rejected events left no marks, so the room still clears
	// through the normal path once entered
	room.Enter()
	transitions, err := room.RecordEnemyDefeated("e1")
	s.Require().NoError(err)
	s.Require().Len(transitions, 1)
	s.Assert().Equal(EventRoomCleared, transitions[0].EventType)
}

func (s *RoomInstanceTestSuite) TestLastRewardCompletesClearedRoom() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1"), itemSpawn("r1"), itemSpawn("r2")})
	room.Enter()

	// Collecting before the room is cleared never completes it
	transitions, err := room.CollectReward("r1")
	s.Require().NoError(err)
	s.Assert().Empty(transitions)
	s.Assert().Equal(entities.RoomStateVisited, room.State())

	_, err = room.RecordEnemyDefeated("e1")
	s.Require().NoError(err)
	s.Require().Equal(entities.RoomStateCleared, room.State())

	transitions, err = room.CollectReward("r2")
	s.Require().NoError(err)
	s.Require().Len(transitions, 1)
	s.Assert().Equal(EventRoomCompleted, transitions[0].EventType)
	s.Assert().Equal(entities.RoomStateCompleted, room.State())
}

func (s *RoomInstanceTestSuite) TestStateNeverRegresses() {
	room := newRoomInstance(0, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1"), itemSpawn("r1")})

	lastRank := room.State().Rank()
	step := func() {
		rank := room.State().Rank()
		s.Require().GreaterOrEqual(rank, lastRank)
		lastRank = rank
	}

	room.Enter()
	step()
	room.Exit()
	step()
	room.Enter()
	step()
	_, _ = room.RecordEnemyDefeated("e1")
	step()
	_, _ = room.CollectReward("r1")
	step()
	room.Enter()
	step()

	s.Assert().Equal(entities.RoomStateCompleted, room.State())
}

func (s *RoomInstanceTestSuite) TestDataRoundTrip() {
	room := newRoomInstance(2, testPlacementData(entities.CategoryNormal),
		[]entities.SpawnData{enemySpawn("e1"), itemSpawn("r1")})
	room.Enter()
	_, err := room.RecordEnemyDefeated("e1")
	s.Require().NoError(err)

	data := room.ToData()
	s.Assert().Equal(2, data.Index)
	s.Assert().Equal(entities.RoomStateCleared, data.State)
	s.Assert().True(data.Active)

	restored := roomFromData(data)
	s.Assert().Equal(room.State(), restored.State())
	s.Assert().Equal(room.Active(), restored.Active())
	s.Assert().Equal(room.Spawns(), restored.Spawns())

	// The restored room continues where the original stopped
	transitions, err := restored.CollectReward("r1")
	s.Require().NoError(err)
	s.Require().Len(transitions, 1)
	s.Assert().Equal(EventRoomCompleted, transitions[0].EventType)
}
