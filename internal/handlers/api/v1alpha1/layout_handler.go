// Package v1alpha1 exposes the layout service over HTTP/JSON
package v1alpha1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/layout"
)

// LayoutHandlerConfig holds dependencies for the layout handler
type LayoutHandlerConfig struct {
	LayoutService layout.Service
}

// Validate ensures all required dependencies are present
func (c *LayoutHandlerConfig) Validate() error {
	if c.LayoutService == nil {
		return errors.InvalidArgument("layout service is required")
	}
	return nil
}

// LayoutHandler implements the layout HTTP API
type LayoutHandler struct {
	layoutService layout.Service
}

// NewLayoutHandler creates a new layout handler with the given configuration
func NewLayoutHandler(cfg *LayoutHandlerConfig) (*LayoutHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &LayoutHandler{
		layoutService: cfg.LayoutService,
	}, nil
}

// RegisterRoutes mounts the layout routes on the router
func (h *LayoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/v1alpha1/layouts", func(r chi.Router) {
		r.Post("/", h.GenerateLayout)
		r.Get("/", h.ListLayouts)
		r.Get("/{layoutID}", h.GetLayout)
		r.Delete("/{layoutID}", h.DeleteLayout)

		r.Route("/{layoutID}/rooms/{roomIndex}", func(r chi.Router) {
			r.Post("/enter", h.EnterRoom)
			r.Post("/exit", h.ExitRoom)
			r.Post("/enemy-defeated", h.RecordEnemyDefeated)
			r.Post("/collect-reward", h.CollectReward)
		})
	})
}

// GenerateLayoutRequest is the JSON body for POST /v1alpha1/layouts
type GenerateLayoutRequest struct {
	OwnerID string              `json:"owner_id"`
	Seed    int64               `json:"seed,omitempty"`
	Level   *entities.LevelData `json:"level"`
}

// GenerateLayoutResponse is the JSON body returned by layout generation
type GenerateLayoutResponse struct {
	Layout   *entities.LayoutData `json:"layout"`
	Warnings []string             `json:"warnings,omitempty"`
}

// GenerateLayout handles POST /v1alpha1/layouts
func (h *LayoutHandler) GenerateLayout(w http.ResponseWriter, r *http.Request) {
	var req GenerateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.layoutService.GenerateLayout(r.Context(), &layout.GenerateLayoutInput{
		OwnerID: req.OwnerID,
		Level:   req.Level,
		Seed:    req.Seed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, GenerateLayoutResponse{
		Layout:   output.Layout,
		Warnings: output.Warnings,
	})
}

// GetLayoutResponse is the JSON body returned by layout fetches
type GetLayoutResponse struct {
	Layout *entities.LayoutData `json:"layout"`
}

// GetLayout handles GET /v1alpha1/layouts/{layoutID}
func (h *LayoutHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	output, err := h.layoutService.GetLayout(r.Context(), &layout.GetLayoutInput{
		LayoutID: chi.URLParam(r, "layoutID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, GetLayoutResponse{Layout: output.Layout})
}

// ListLayoutsResponse is the JSON body returned by layout listing
type ListLayoutsResponse struct {
	Layouts []*entities.LayoutData `json:"layouts"`
}

// ListLayouts handles GET /v1alpha1/layouts?owner_id=...
func (h *LayoutHandler) ListLayouts(w http.ResponseWriter, r *http.Request) {
	output, err := h.layoutService.ListLayouts(r.Context(), &layout.ListLayoutsInput{
		OwnerID: r.URL.Query().Get("owner_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ListLayoutsResponse{Layouts: output.Layouts})
}

// DeleteLayout handles DELETE /v1alpha1/layouts/{layoutID}
func (h *LayoutHandler) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	_, err := h.layoutService.DeleteLayout(r.Context(), &layout.DeleteLayoutInput{
		LayoutID: chi.URLParam(r, "layoutID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RoomResponse is the JSON body returned by room gameplay endpoints
type RoomResponse struct {
	Room   *entities.RoomData `json:"room"`
	Events []string           `json:"events,omitempty"`
}

// SpawnPointRequest is the JSON body for spawn-targeted gameplay endpoints
type SpawnPointRequest struct {
	SpawnPointID string `json:"spawn_point_id"`
}

// EnterRoom handles POST /v1alpha1/layouts/{layoutID}/rooms/{roomIndex}/enter
func (h *LayoutHandler) EnterRoom(w http.ResponseWriter, r *http.Request) {
	roomIndex, err := roomIndexParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	output, err := h.layoutService.EnterRoom(r.Context(), &layout.EnterRoomInput{
		LayoutID:  chi.URLParam(r, "layoutID"),
		RoomIndex: roomIndex,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: output.Room, Events: output.Events})
}

// ExitRoom handles POST /v1alpha1/layouts/{layoutID}/rooms/{roomIndex}/exit
func (h *LayoutHandler) ExitRoom(w http.ResponseWriter, r *http.Request) {
	roomIndex, err := roomIndexParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	output, err := h.layoutService.ExitRoom(r.Context(), &layout.ExitRoomInput{
		LayoutID:  chi.URLParam(r, "layoutID"),
		RoomIndex: roomIndex,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: output.Room})
}

// RecordEnemyDefeated handles POST /v1alpha1/layouts/{layoutID}/rooms/{roomIndex}/enemy-defeated
func (h *LayoutHandler) RecordEnemyDefeated(w http.ResponseWriter, r *http.Request) {
	roomIndex, err := roomIndexParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req SpawnPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.layoutService.RecordEnemyDefeated(r.Context(), &layout.RecordEnemyDefeatedInput{
		LayoutID:     chi.URLParam(r, "layoutID"),
		RoomIndex:    roomIndex,
		SpawnPointID: req.SpawnPointID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: output.Room, Events: output.Events})
}

// CollectReward handles POST /v1alpha1/layouts/{layoutID}/rooms/{roomIndex}/collect-reward
func (h *LayoutHandler) CollectReward(w http.ResponseWriter, r *http.Request) {
	roomIndex, err := roomIndexParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req SpawnPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.layoutService.CollectReward(r.Context(), &layout.CollectRewardInput{
		LayoutID:     chi.URLParam(r, "layoutID"),
		RoomIndex:    roomIndex,
		SpawnPointID: req.SpawnPointID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: output.Room, Events: output.Events})
}

func roomIndexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "roomIndex")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid room index %q", raw)
	}
	return index, nil
}

// ErrorResponse is the JSON body for error replies
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps a service error onto its HTTP status
func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	respondJSON(w, code.HTTPStatus(), ErrorResponse{
		Code:    code.String(),
		Message: errors.GetMessage(err),
	})
}
