// Package dungeon implements procedural dungeon layout generation: a
// bounded occupancy grid, placement validation and scoring, the phased
// layout generator, and the runtime room graph explored during play.
package dungeon

import (
	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Grid is a bounded 2D occupancy map. Cells are reserved by accepted
// placements during a generation run; a cell is occupied if and only if
// some accepted placement's footprint covers it. Overlap semantics live
// in Placement, the grid only answers cell-level queries.
type Grid struct {
	width    int
	height   int
	occupied []bool
}

// NewGrid creates an empty grid with the given dimensions
func NewGrid(width, height int) (*Grid, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("width", width, vb)
	errors.ValidatePositive("height", height, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return &Grid{
		width:    width,
		height:   height,
		occupied: make([]bool, width*height),
	}, nil
}

// Width returns the grid width in cells
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells
func (g *Grid) Height() int {
	return g.height
}

// IsValidPosition reports whether the position lies within grid bounds
func (g *Grid) IsValidPosition(pos entities.Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// IsCellOccupied reports whether the cell is covered by an accepted
// placement. Out-of-bounds positions are never occupied.
func (g *Grid) IsCellOccupied(pos entities.Position) bool {
	if !g.IsValidPosition(pos) {
		return false
	}
	return g.occupied[pos.Y*g.width+pos.X]
}

// SetCellOccupied marks or clears a cell. Out-of-bounds positions are
// ignored.
func (g *Grid) SetCellOccupied(pos entities.Position, occupied bool) {
	if !g.IsValidPosition(pos) {
		return
	}
	g.occupied[pos.Y*g.width+pos.X] = occupied
}

// SetRegionOccupied marks or clears every cell of a footprint
func (g *Grid) SetRegionOccupied(origin entities.Position, width, height int, occupied bool) {
	for y := origin.Y; y < origin.Y+height; y++ {
		for x := origin.X; x < origin.X+width; x++ {
			g.SetCellOccupied(entities.Position{X: x, Y: y}, occupied)
		}
	}
}
