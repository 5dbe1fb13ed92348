package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

func TestNewGridValidation(t *testing.T) {
	_, err := NewGrid(0, 10)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewGrid(10, -1)
	assert.True(t, errors.IsInvalidArgument(err))

	grid, err := NewGrid(20, 15)
	require.NoError(t, err)
	assert.Equal(t, 20, grid.Width())
	assert.Equal(t, 15, grid.Height())
}

func TestGridBounds(t *testing.T) {
	grid, err := NewGrid(5, 5)
	require.NoError(t, err)

	assert.True(t, grid.IsValidPosition(entities.Position{X: 0, Y: 0}))
	assert.True(t, grid.IsValidPosition(entities.Position{X: 4, Y: 4}))
	assert.False(t, grid.IsValidPosition(entities.Position{X: 5, Y: 0}))
	assert.False(t, grid.IsValidPosition(entities.Position{X: 0, Y: 5}))
	assert.False(t, grid.IsValidPosition(entities.Position{X: -1, Y: 0}))
}

func TestGridOccupancy(t *testing.T) {
	grid, err := NewGrid(5, 5)
	require.NoError(t, err)

	pos := entities.Position{X: 2, Y: 3}
	assert.False(t, grid.IsCellOccupied(pos))

	grid.SetCellOccupied(pos, true)
	assert.True(t, grid.IsCellOccupied(pos))

	grid.SetCellOccupied(pos, false)
	assert.False(t, grid.IsCellOccupied(pos))

	// Out-of-bounds cells are silently ignored and never occupied
	outside := entities.Position{X: 9, Y: 9}
	grid.SetCellOccupied(outside, true)
	assert.False(t, grid.IsCellOccupied(outside))
}

func TestGridRegionOccupancy(t *testing.T) {
	grid, err := NewGrid(10, 10)
	require.NoError(t, err)

	grid.SetRegionOccupied(entities.Position{X: 2, Y: 2}, 3, 2, true)

	for y := 2; y < 4; y++ {
		for x := 2; x < 5; x++ {
			assert.True(t, grid.IsCellOccupied(entities.Position{X: x, Y: y}), "cell (%d,%d)", x, y)
		}
	}
	assert.False(t, grid.IsCellOccupied(entities.Position{X: 5, Y: 2}))
	assert.False(t, grid.IsCellOccupied(entities.Position{X: 2, Y: 4}))
}
