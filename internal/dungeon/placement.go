package dungeon

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

const (
	// Cells of empty space required between any two footprints
	minSpacingMargin = 1

	// No other room may lie within this radius of an isolated placement
	isolationRadius = 2.0
)

// Placement order bands per category. Normal rooms draw a randomized
// order inside their band so materialization interleaves them.
const (
	orderStart      = 0
	orderNormalBase = 100
	orderNormalSpan = 500
	orderShop       = 600
	orderSecret     = 700
	orderTreasure   = 800
	orderBoss       = 999
)

// Placement is a candidate assignment of one room template to one grid
// position. It carries its own validation and scoring; only accepted
// placements persist into a DungeonLayout.
type Placement struct {
	Template entities.RoomTemplate
	Position entities.Position
	Width    int
	Height   int

	// Materialization sequence and tie-breaking
	Order    int
	Priority float64

	// Connectivity constraints applied when the layout is wired
	MinConnections int
	MaxConnections int
	MustBeIsolated bool

	// Placement preferences feeding the score, never validity
	PreferEdgePosition   bool
	PreferCenterPosition bool

	// Distance bounds relative to the start room, in grid units.
	// Zero MaxDistanceFromStart means unbounded.
	MinDistanceFromStart float64
	MaxDistanceFromStart float64

	valid         bool
	invalidReason string
}

// categoryProfile holds the placement defaults for one room category.
// One variant per category, applied exactly once at construction.
type categoryProfile struct {
	order          int
	priority       float64
	minConnections int
	maxConnections int
	isolated       bool
	preferEdge     bool
	minDistance    float64
	maxDistance    float64
}

// profileFor returns the defaults for a category. Normal rooms consume
// one draw from rng for their randomized order; every other category is
// deterministic.
func profileFor(category entities.RoomCategory, rng *rand.Rand) categoryProfile {
	switch category {
	case entities.CategoryStart:
		return categoryProfile{order: orderStart, priority: 1.0, minConnections: 1, maxConnections: 2}
	case entities.CategoryBoss:
		return categoryProfile{order: orderBoss, priority: 1.0, minConnections: 1, maxConnections: 1, preferEdge: true, minDistance: 5}
	case entities.CategoryTreasure:
		return categoryProfile{order: orderTreasure, priority: 0.8, minConnections: 1, maxConnections: 1, isolated: true, minDistance: 3}
	case entities.CategoryShop:
		return categoryProfile{order: orderShop, priority: 0.7, minConnections: 1, maxConnections: 2, minDistance: 2}
	case entities.CategorySecret:
		return categoryProfile{order: orderSecret, priority: 0.3, minConnections: 1, maxConnections: 1, isolated: true, preferEdge: true}
	default:
		return categoryProfile{
			order:          orderNormalBase + rng.Intn(orderNormalSpan),
			priority:       0.5,
			minConnections: 1,
			maxConnections: 4,
		}
	}
}

// NewPlacement builds a candidate placement of the template at pos with
// the category defaults applied
func NewPlacement(template entities.RoomTemplate, pos entities.Position, rng *rand.Rand) *Placement {
	profile := profileFor(template.Category, rng)

	return &Placement{
		Template:             template,
		Position:             pos,
		Width:                template.Width,
		Height:               template.Height,
		Order:                profile.order,
		Priority:             profile.priority,
		MinConnections:       profile.minConnections,
		MaxConnections:       profile.maxConnections,
		MustBeIsolated:       profile.isolated,
		PreferEdgePosition:   profile.preferEdge,
		MinDistanceFromStart: profile.minDistance,
		MaxDistanceFromStart: profile.maxDistance,
	}
}

// IsValid reports the outcome of the last Validate call
func (p *Placement) IsValid() bool {
	return p.valid
}

// InvalidReason returns why the last Validate call failed, or ""
func (p *Placement) InvalidReason() string {
	return p.invalidReason
}

// Validate checks, in order: footprint within grid bounds, no overlap
// with any existing placement's footprint expanded by the spacing
// margin, and distance from the start room within this placement's
// bounds once a start room exists. The first failed check
// short-circuits with a specific reason.
func (p *Placement) Validate(grid *Grid, existing []*Placement) (bool, string) {
	p.valid = false

	if !p.withinBounds(grid) {
		p.invalidReason = fmt.Sprintf("footprint %dx%d at (%d,%d) exceeds grid bounds %dx%d",
			p.Width, p.Height, p.Position.X, p.Position.Y, grid.Width(), grid.Height())
		return false, p.invalidReason
	}

	for _, other := range existing {
		if p.overlapsExpanded(other, minSpacingMargin) {
			p.invalidReason = fmt.Sprintf("overlaps room %s at (%d,%d) within spacing margin %d",
				other.Template.ID, other.Position.X, other.Position.Y, minSpacingMargin)
			return false, p.invalidReason
		}
	}

	if start := findStart(existing); start != nil {
		dist := p.DistanceTo(start)
		if dist < p.MinDistanceFromStart {
			p.invalidReason = fmt.Sprintf("distance %.2f from start below minimum %.2f", dist, p.MinDistanceFromStart)
			return false, p.invalidReason
		}
		if p.MaxDistanceFromStart > 0 && dist > p.MaxDistanceFromStart {
			p.invalidReason = fmt.Sprintf("distance %.2f from start above maximum %.2f", dist, p.MaxDistanceFromStart)
			return false, p.invalidReason
		}
	}

	p.valid = true
	p.invalidReason = ""
	return true, ""
}

// CalculatePlacementScore returns -1 for an invalid placement,
// otherwise the placement priority adjusted by position bonuses. The
// score is a selection heuristic only and never overrides validity.
func (p *Placement) CalculatePlacementScore(grid *Grid, existing []*Placement) float64 {
	if ok, _ := p.Validate(grid, existing); !ok {
		return -1
	}

	score := p.Priority

	if p.PreferEdgePosition {
		if p.touchesBoundary(grid) {
			score += 0.3
		} else {
			score -= 0.2
		}
	}

	if p.PreferCenterPosition {
		center := entities.Position{X: grid.Width() / 2, Y: grid.Height() / 2}
		maxDist := math.Hypot(float64(grid.Width())/2, float64(grid.Height())/2)
		if maxDist > 0 {
			dist := math.Hypot(float64(p.Position.X-center.X), float64(p.Position.Y-center.Y))
			score += 0.3 * (1 - dist/maxDist)
		}
	}

	if p.MustBeIsolated {
		if p.nearestNeighborDistance(existing) > isolationRadius {
			score += 0.4
		} else {
			score -= 0.5
		}
	}

	return score
}

// DistanceTo returns the Euclidean distance between the two placements'
// grid positions
func (p *Placement) DistanceTo(other *Placement) float64 {
	return math.Hypot(float64(p.Position.X-other.Position.X), float64(p.Position.Y-other.Position.Y))
}

// Center returns the cell nearest the middle of the footprint
func (p *Placement) Center() entities.Position {
	return entities.Position{
		X: p.Position.X + p.Width/2,
		Y: p.Position.Y + p.Height/2,
	}
}

// Contains reports whether the footprint covers the given cell
func (p *Placement) Contains(pos entities.Position) bool {
	return pos.X >= p.Position.X && pos.X < p.Position.X+p.Width &&
		pos.Y >= p.Position.Y && pos.Y < p.Position.Y+p.Height
}

// ToData converts the placement to its serialized form
func (p *Placement) ToData() entities.PlacementData {
	return entities.PlacementData{
		TemplateID: p.Template.ID,
		Category:   p.Template.Category,
		Position:   p.Position,
		Width:      p.Width,
		Height:     p.Height,
		Order:      p.Order,
		Priority:   p.Priority,
	}
}

func (p *Placement) withinBounds(grid *Grid) bool {
	if p.Position.X < 0 || p.Position.Y < 0 {
		return false
	}
	return p.Position.X+p.Width <= grid.Width() && p.Position.Y+p.Height <= grid.Height()
}

func (p *Placement) touchesBoundary(grid *Grid) bool {
	return p.Position.X == 0 || p.Position.Y == 0 ||
		p.Position.X+p.Width == grid.Width() || p.Position.Y+p.Height == grid.Height()
}

// overlapsExpanded reports whether this footprint intersects the other
// footprint grown by margin cells on every side
func (p *Placement) overlapsExpanded(other *Placement, margin int) bool {
	if p.Position.X >= other.Position.X+other.Width+margin {
		return false
	}
	if other.Position.X >= p.Position.X+p.Width+margin {
		return false
	}
	if p.Position.Y >= other.Position.Y+other.Height+margin {
		return false
	}
	if other.Position.Y >= p.Position.Y+p.Height+margin {
		return false
	}
	return true
}

func (p *Placement) nearestNeighborDistance(existing []*Placement) float64 {
	nearest := math.Inf(1)
	for _, other := range existing {
		if d := p.DistanceTo(other); d < nearest {
			nearest = d
		}
	}
	return nearest
}

func findStart(placements []*Placement) *Placement {
	for _, p := range placements {
		if p.Template.Category == entities.CategoryStart {
			return p
		}
	}
	return nil
}
