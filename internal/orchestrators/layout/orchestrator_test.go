package layout_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/layout"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/layouts"
	layoutsmock "github.com/KirkDiggler/dungeon-api/internal/repositories/layouts/mock"
)

func testLevel() *entities.LevelData {
	return &entities.LevelData{
		GridWidth:  20,
		GridHeight: 20,
		MinRooms:   5,
		MaxRooms:   8,
		Templates: []entities.RoomTemplate{
			{ID: "start-hall", Category: entities.CategoryStart, Width: 3, Height: 3},
			{
				ID: "normal-cell", Category: entities.CategoryNormal, Width: 3, Height: 3,
				SpawnPoints: []entities.SpawnPoint{
					{ID: "n-mob", Kind: entities.SpawnEnemy, Offset: entities.Position{X: 1, Y: 1}, Chance: 1.0},
					{ID: "n-loot", Kind: entities.SpawnItem, Offset: entities.Position{X: 2, Y: 2}, Chance: 1.0},
				},
			},
			{
				ID: "boss-lair", Category: entities.CategoryBoss, Width: 4, Height: 4,
				SpawnPoints: []entities.SpawnPoint{
					{ID: "b-boss", Kind: entities.SpawnEnemy, Offset: entities.Position{X: 2, Y: 2}, Chance: 1.0},
				},
			},
			{ID: "treasure-vault", Category: entities.CategoryTreasure, Width: 2, Height: 2},
			{ID: "shop-stall", Category: entities.CategoryShop, Width: 2, Height: 2},
		},
	}
}

type OrchestratorTestSuite struct {
	suite.Suite
	service layout.Service
	repo    *layouts.InMemoryRepository
	ctx     context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.repo = layouts.NewInMemory(&layouts.InMemoryConfig{
		Clock: &clock.Fixed{T: time.Unix(1700000000, 0)},
	})
	s.ctx = context.Background()

	service, err := layout.NewOrchestrator(&layout.Config{
		LayoutRepo:  s.repo,
		IDGenerator: idgen.NewSequential("layout"),
		EventBus:    events.NewBus(),
		Clock:       &clock.Fixed{T: time.Unix(1700000000, 0)},
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *OrchestratorTestSuite) generate() *entities.LayoutData {
	output, err := s.service.GenerateLayout(s.ctx, &layout.GenerateLayoutInput{
		OwnerID: "player_1",
		Level:   testLevel(),
		Seed:    42,
	})
	s.Require().NoError(err)
	return output.Layout
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := layout.NewOrchestrator(nil)
	s.Assert().Error(err)

	_, err = layout.NewOrchestrator(&layout.Config{})
	s.Assert().Error(err)

	_, err = layout.NewOrchestrator(&layout.Config{
		LayoutRepo:  s.repo,
		IDGenerator: idgen.NewSequential("layout"),
	})
	s.Assert().Error(err, "event bus is required")
}

func (s *OrchestratorTestSuite) TestGenerateLayoutPersists() {
	generated := s.generate()

	s.Assert().Equal("layout_1", generated.ID)
	s.Assert().Equal("player_1", generated.OwnerID)
	s.Assert().Equal(int64(42), generated.Seed)
	s.Assert().NotEmpty(generated.Rooms)

	got, err := s.service.GetLayout(s.ctx, &layout.GetLayoutInput{LayoutID: generated.ID})
	s.Require().NoError(err)
	s.Assert().Equal(generated, got.Layout)
}

func (s *OrchestratorTestSuite) TestGenerateLayoutDeterministicForSeed() {
	first := s.generate()
	second := s.generate()

	s.Assert().NotEqual(first.ID, second.ID)
	s.Assert().Equal(first.Rooms, second.Rooms)
	s.Assert().Equal(first.Connections, second.Connections)
}

func (s *OrchestratorTestSuite) TestGenerateLayoutValidation() {
	_, err := s.service.GenerateLayout(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.service.GenerateLayout(s.ctx, &layout.GenerateLayoutInput{Level: testLevel()})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.service.GenerateLayout(s.ctx, &layout.GenerateLayoutInput{OwnerID: "player_1"})
	s.Assert().Error(err, "level is required")
}

func (s *OrchestratorTestSuite) TestListLayouts() {
	first := s.generate()
	second := s.generate()

	list, err := s.service.ListLayouts(s.ctx, &layout.ListLayoutsInput{OwnerID: "player_1"})
	s.Require().NoError(err)
	s.Require().Len(list.Layouts, 2)

	ids := []string{list.Layouts[0].ID, list.Layouts[1].ID}
	s.Assert().ElementsMatch([]string{first.ID, second.ID}, ids)
}

func (s *OrchestratorTestSuite) TestDeleteLayout() {
	generated := s.generate()

	_, err := s.service.DeleteLayout(s.ctx, &layout.DeleteLayoutInput{LayoutID: generated.ID})
	s.Require().NoError(err)

	_, err = s.service.GetLayout(s.ctx, &layout.GetLayoutInput{LayoutID: generated.ID})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestEnterRoomAdvancesState() {
	generated := s.generate()

	output, err := s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{
		LayoutID:  generated.ID,
		RoomIndex: generated.StartIndex,
	})
	s.Require().NoError(err)
	s.Assert().True(output.Room.Active)
	s.Assert().NotEqual(entities.RoomStateUnvisited, output.Room.State)
	s.Require().NotEmpty(output.Events)
	s.Assert().Equal("dungeon.room.entered", output.Events[0])

	// The change survived the save
	got, err := s.service.GetLayout(s.ctx, &layout.GetLayoutInput{LayoutID: generated.ID})
	s.Require().NoError(err)
	s.Assert().True(got.Layout.Rooms[generated.StartIndex].Active)
}

func (s *OrchestratorTestSuite) TestEnterRoomDeactivatesPrevious() {
	generated := s.generate()
	startIndex := generated.StartIndex
	otherIndex := (startIndex + 1) % len(generated.Rooms)

	_, err := s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: generated.ID, RoomIndex: startIndex})
	s.Require().NoError(err)

	_, err = s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: generated.ID, RoomIndex: otherIndex})
	s.Require().NoError(err)

	got, err := s.service.GetLayout(s.ctx, &layout.GetLayoutInput{LayoutID: generated.ID})
	s.Require().NoError(err)
	s.Assert().False(got.Layout.Rooms[startIndex].Active)
	s.Assert().True(got.Layout.Rooms[otherIndex].Active)
}

func (s *OrchestratorTestSuite) TestExitRoom() {
	generated := s.generate()

	_, err := s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: generated.ID, RoomIndex: generated.StartIndex})
	s.Require().NoError(err)

	output, err := s.service.ExitRoom(s.ctx, &layout.ExitRoomInput{LayoutID: generated.ID, RoomIndex: generated.StartIndex})
	s.Require().NoError(err)
	s.Assert().False(output.Room.Active)
}

func (s *OrchestratorTestSuite) TestCombatFlowClearsAndCompletesRoom() {
	generated := s.generate()

	// Find a normal room that spawned both an enemy and a reward
	target := -1
	for _, room := range generated.Rooms {
		if room.Placement.Category == entities.CategoryNormal && len(room.Spawns) == 2 {
			target = room.Index
			break
		}
	}
	s.Require().GreaterOrEqual(target, 0, "expected a normal room with spawns")

	_, err := s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: generated.ID, RoomIndex: target})
	s.Require().NoError(err)

	defeated, err := s.service.RecordEnemyDefeated(s.ctx, &layout.RecordEnemyDefeatedInput{
		LayoutID:     generated.ID,
		RoomIndex:    target,
		SpawnPointID: "n-mob",
	})
	s.Require().NoError(err)
	s.Assert().Equal(entities.RoomStateCleared, defeated.Room.State)
	s.Assert().Equal([]string{"dungeon.room.cleared"}, defeated.Events)

	collected, err := s.service.CollectReward(s.ctx, &layout.CollectRewardInput{
		LayoutID:     generated.ID,
		RoomIndex:    target,
		SpawnPointID: "n-loot",
	})
	s.Require().NoError(err)
	s.Assert().Equal(entities.RoomStateCompleted, collected.Room.State)
	s.Assert().Equal([]string{"dungeon.room.completed"}, collected.Events)
}

func (s *OrchestratorTestSuite) TestGameplayErrors() {
	generated := s.generate()

	_, err := s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: "missing", RoomIndex: 0})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: generated.ID, RoomIndex: 99})
	s.Assert().True(errors.IsNotFound(err))

	// Gameplay events are rejected until the room has been entered
	_, err = s.service.RecordEnemyDefeated(s.ctx, &layout.RecordEnemyDefeatedInput{
		LayoutID:     generated.ID,
		RoomIndex:    generated.StartIndex,
		SpawnPointID: "nope",
	})
	s.Assert().True(errors.IsFailedPrecondition(err))

	_, err = s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: generated.ID, RoomIndex: generated.StartIndex})
	s.Require().NoError(err)

	_, err = s.service.RecordEnemyDefeated(s.ctx, &layout.RecordEnemyDefeatedInput{
		LayoutID:     generated.ID,
		RoomIndex:    generated.StartIndex,
		SpawnPointID: "nope",
	})
	s.Assert().True(errors.IsNotFound(err))
}

// MockRepoTestSuite exercises the orchestrator against the generated
// repository mock for failure propagation
type MockRepoTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *layoutsmock.MockRepository
	service  layout.Service
	ctx      context.Context
}

func TestMockRepoSuite(t *testing.T) {
	suite.Run(t, new(MockRepoTestSuite))
}

func (s *MockRepoTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = layoutsmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	service, err := layout.NewOrchestrator(&layout.Config{
		LayoutRepo:  s.mockRepo,
		IDGenerator: idgen.NewSequential("layout"),
		EventBus:    events.NewBus(),
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *MockRepoTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *MockRepoTestSuite) TestGenerateLayoutStorageFailure() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis unavailable"))

	_, err := s.service.GenerateLayout(s.ctx, &layout.GenerateLayoutInput{
		OwnerID: "player_1",
		Level:   testLevel(),
		Seed:    42,
	})
	s.Assert().True(errors.IsInternal(err))
}

func (s *MockRepoTestSuite) TestEnterRoomSaveFailure() {
	stored := &entities.LayoutData{
		ID:         "layout_1",
		OwnerID:    "player_1",
		GridWidth:  10,
		GridHeight: 10,
		StartIndex: 0,
		Rooms: []entities.RoomData{
			{
				Index: 0,
				Placement: entities.PlacementData{
					TemplateID: "start-hall",
					Category:   entities.CategoryStart,
					Position:   entities.Position{X: 3, Y: 3},
					Width:      3,
					Height:     3,
				},
				State: entities.RoomStateUnvisited,
			},
		},
	}

	s.mockRepo.EXPECT().
		Get(s.ctx, layouts.GetInput{ID: "layout_1"}).
		Return(&layouts.GetOutput{Layout: stored}, nil)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis unavailable"))

	_, err := s.service.EnterRoom(s.ctx, &layout.EnterRoomInput{LayoutID: "layout_1", RoomIndex: 0})
	s.Assert().True(errors.IsInternal(err))
}
