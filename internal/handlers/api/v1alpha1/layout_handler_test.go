package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/dungeon-api/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/layout"
	layoutmock "github.com/KirkDiggler/dungeon-api/internal/orchestrators/layout/mock"
)

type LayoutHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *layoutmock.MockService
	router      chi.Router
}

func TestLayoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(LayoutHandlerTestSuite))
}

func (s *LayoutHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = layoutmock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewLayoutHandler(&v1alpha1.LayoutHandlerConfig{
		LayoutService: s.mockService,
	})
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	handler.RegisterRoutes(s.router)
}

func (s *LayoutHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LayoutHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *LayoutHandlerTestSuite) TestNewLayoutHandlerValidation() {
	_, err := v1alpha1.NewLayoutHandler(nil)
	s.Assert().Error(err)

	_, err = v1alpha1.NewLayoutHandler(&v1alpha1.LayoutHandlerConfig{})
	s.Assert().Error(err)
}

func (s *LayoutHandlerTestSuite) TestGenerateLayout() {
	level := &entities.LevelData{GridWidth: 20, GridHeight: 20, MinRooms: 5, MaxRooms: 8}
	generated := &entities.LayoutData{ID: "layout_1", OwnerID: "player_1", Seed: 42}

	s.mockService.EXPECT().
		GenerateLayout(gomock.Any(), &layout.GenerateLayoutInput{
			OwnerID: "player_1",
			Level:   level,
			Seed:    42,
		}).
		Return(&layout.GenerateLayoutOutput{
			Layout:   generated,
			Warnings: []string{"secret room omitted: no valid position found"},
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/layouts", v1alpha1.GenerateLayoutRequest{
		OwnerID: "player_1",
		Seed:    42,
		Level:   level,
	})

	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp v1alpha1.GenerateLayoutResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Assert().Equal("layout_1", resp.Layout.ID)
	s.Assert().Len(resp.Warnings, 1)
}

func (s *LayoutHandlerTestSuite) TestGenerateLayoutBadBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1alpha1/layouts", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *LayoutHandlerTestSuite) TestGenerateLayoutValidationError() {
	s.mockService.EXPECT().
		GenerateLayout(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument("owner ID is required"))

	rec := s.do(http.MethodPost, "/v1alpha1/layouts", v1alpha1.GenerateLayoutRequest{})

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp v1alpha1.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Assert().Equal("INVALID_ARGUMENT", resp.Code)
}

func (s *LayoutHandlerTestSuite) TestGetLayout() {
	s.mockService.EXPECT().
		GetLayout(gomock.Any(), &layout.GetLayoutInput{LayoutID: "layout_1"}).
		Return(&layout.GetLayoutOutput{
			Layout: &entities.LayoutData{ID: "layout_1", OwnerID: "player_1"},
		}, nil)

	rec := s.do(http.MethodGet, "/v1alpha1/layouts/layout_1", nil)

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.GetLayoutResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Assert().Equal("layout_1", resp.Layout.ID)
}

func (s *LayoutHandlerTestSuite) TestGetLayoutNotFound() {
	s.mockService.EXPECT().
		GetLayout(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFoundf("layout with ID %s not found", "missing"))

	rec := s.do(http.MethodGet, "/v1alpha1/layouts/missing", nil)

	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *LayoutHandlerTestSuite) TestListLayouts() {
	s.mockService.EXPECT().
		ListLayouts(gomock.Any(), &layout.ListLayoutsInput{OwnerID: "player_1"}).
		Return(&layout.ListLayoutsOutput{
			Layouts: []*entities.LayoutData{{ID: "layout_1"}, {ID: "layout_2"}},
		}, nil)

	rec := s.do(http.MethodGet, "/v1alpha1/layouts?owner_id=player_1", nil)

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.ListLayoutsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Assert().Len(resp.Layouts, 2)
}

func (s *LayoutHandlerTestSuite) TestDeleteLayout() {
	s.mockService.EXPECT().
		DeleteLayout(gomock.Any(), &layout.DeleteLayoutInput{LayoutID: "layout_1"}).
		Return(&layout.DeleteLayoutOutput{}, nil)

	rec := s.do(http.MethodDelete, "/v1alpha1/layouts/layout_1", nil)

	s.Assert().Equal(http.StatusNoContent, rec.Code)
}

func (s *LayoutHandlerTestSuite) TestEnterRoom() {
	s.mockService.EXPECT().
		EnterRoom(gomock.Any(), &layout.EnterRoomInput{LayoutID: "layout_1", RoomIndex: 3}).
		Return(&layout.EnterRoomOutput{
			Room:   &entities.RoomData{Index: 3, State: entities.RoomStateVisited, Active: true},
			Events: []string{"dungeon.room.entered"},
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/layouts/layout_1/rooms/3/enter", nil)

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.RoomResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Assert().Equal(3, resp.Room.Index)
	s.Assert().Equal([]string{"dungeon.room.entered"}, resp.Events)
}

func (s *LayoutHandlerTestSuite) TestEnterRoomBadIndex() {
	rec := s.do(http.MethodPost, "/v1alpha1/layouts/layout_1/rooms/potato/enter", nil)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *LayoutHandlerTestSuite) TestExitRoom() {
	s.mockService.EXPECT().
		ExitRoom(gomock.Any(), &layout.ExitRoomInput{LayoutID: "layout_1", RoomIndex: 2}).
		Return(&layout.ExitRoomOutput{
			Room: &entities.RoomData{Index: 2, State: entities.RoomStateVisited},
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/layouts/layout_1/rooms/2/exit", nil)

	s.Assert().Equal(http.StatusOK, rec.Code)
}

func (s *LayoutHandlerTestSuite) TestRecordEnemyDefeated() {
	s.mockService.EXPECT().
		RecordEnemyDefeated(gomock.Any(), &layout.RecordEnemyDefeatedInput{
			LayoutID:     "layout_1",
			RoomIndex:    1,
			SpawnPointID: "n-mob",
		}).
		Return(&layout.RecordEnemyDefeatedOutput{
			Room:   &entities.RoomData{Index: 1, State: entities.RoomStateCleared},
			Events: []string{"dungeon.room.cleared"},
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/layouts/layout_1/rooms/1/enemy-defeated",
		v1alpha1.SpawnPointRequest{SpawnPointID: "n-mob"})

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.RoomResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Assert().Equal(entities.RoomStateCleared, resp.Room.State)
}

func (s *LayoutHandlerTestSuite) TestRecordEnemyDefeatedAlreadyDefeated() {
	s.mockService.EXPECT().
		RecordEnemyDefeated(gomock.Any(), gomock.Any()).
		Return(nil, errors.FailedPreconditionf("enemy spawn %q already defeated", "n-mob"))

	rec := s.do(http.MethodPost, "/v1alpha1/layouts/layout_1/rooms/1/enemy-defeated",
		v1alpha1.SpawnPointRequest{SpawnPointID: "n-mob"})

	s.Assert().Equal(http.StatusPreconditionFailed, rec.Code)
}

func (s *LayoutHandlerTestSuite) TestCollectReward() {
	s.mockService.EXPECT().
		CollectReward(gomock.Any(), &layout.CollectRewardInput{
			LayoutID:     "layout_1",
			RoomIndex:    1,
			SpawnPointID: "n-loot",
		}).
		Return(&layout.CollectRewardOutput{
			Room:   &entities.RoomData{Index: 1, State: entities.RoomStateCompleted},
			Events: []string{"dungeon.room.completed"},
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/layouts/layout_1/rooms/1/collect-reward",
		v1alpha1.SpawnPointRequest{SpawnPointID: "n-loot"})

	s.Require().Equal(http.StatusOK, rec.Code)
}
