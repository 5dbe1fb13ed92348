package dungeon

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

const (
	// Attempt budget for randomized placement searches. Exhausting a
	// budget degrades gracefully rather than failing the run, except
	// for the boss room which uses an exhaustive scan instead.
	normalRoomAttempts  = 100
	specialRoomAttempts = 100

	// Probability that a run includes a secret room at all
	secretRoomChance = 0.3
)

// GeneratorConfig holds the dependencies for a layout generator. The
// random source is owned by the run and passed explicitly; two
// generators built from equal level data and equally seeded sources
// produce identical layouts.
type GeneratorConfig struct {
	Level *entities.LevelData
	Rand  *rand.Rand

	// Roller resolves spawn-point chances. Defaults to a roller
	// backed by Rand so spawns stay reproducible.
	Roller dice.Roller
}

// Validate ensures all required dependencies and mandatory templates
// are provided
func (c *GeneratorConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Rand == nil {
		vb.RequiredField("Rand")
	}
	if c.Level == nil {
		vb.RequiredField("Level")
		return vb.Build()
	}

	errors.ValidatePositive("GridWidth", c.Level.GridWidth, vb)
	errors.ValidatePositive("GridHeight", c.Level.GridHeight, vb)
	if c.Level.MinRooms < 0 {
		vb.Fieldf("MinRooms", "must not be negative, got %d", c.Level.MinRooms)
	}
	if c.Level.MaxRooms < c.Level.MinRooms {
		vb.Fieldf("MaxRooms", "must be >= MinRooms, got %d < %d", c.Level.MaxRooms, c.Level.MinRooms)
	}

	byCategory := c.Level.TemplatesByCategory()
	for _, mandatory := range []entities.RoomCategory{entities.CategoryStart, entities.CategoryBoss} {
		if len(byCategory[mandatory]) == 0 {
			vb.Fieldf("Templates", "missing template for mandatory category %q", mandatory)
		}
	}
	for _, t := range c.Level.Templates {
		if !t.Category.Valid() {
			vb.Fieldf("Templates", "template %s has unknown category %q", t.ID, t.Category)
		}
		if t.Width <= 0 || t.Height <= 0 {
			vb.Fieldf("Templates", "template %s has non-positive footprint %dx%d", t.ID, t.Width, t.Height)
		}
	}

	return vb.Build()
}

// LayoutGenerator drives placement in ordered phases: start room,
// normal rooms, boss room, then the optional special rooms. Phases run
// strictly in sequence because later distance and overlap constraints
// depend on all earlier placements.
type LayoutGenerator struct {
	level  *entities.LevelData
	rng    *rand.Rand
	roller dice.Roller
}

// NewLayoutGenerator creates a generator for one level configuration
func NewLayoutGenerator(cfg *GeneratorConfig) (*LayoutGenerator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = NewSeededRoller(cfg.Rand)
	}

	return &LayoutGenerator{
		level:  cfg.Level,
		rng:    cfg.Rand,
		roller: roller,
	}, nil
}

// GenerationResult reports the outcome of a successful run. Warnings
// record non-fatal shortfalls such as a missed normal-room target or an
// omitted special room.
type GenerationResult struct {
	Layout       *DungeonLayout
	NormalTarget int
	NormalPlaced int
	Warnings     []string
}

// Generate runs all placement phases and wires the resulting rooms
// into a connected layout. It is synchronous and CPU-bound; failures
// are returned as errors, never panics, so the caller can retry with a
// different seed or relaxed parameters.
func (g *LayoutGenerator) Generate() (*GenerationResult, error) {
	grid, err := NewGrid(g.level.GridWidth, g.level.GridHeight)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{}
	byCategory := g.level.TemplatesByCategory()
	var accepted []*Placement

	start, err := g.placeStartRoom(grid, byCategory, &accepted)
	if err != nil {
		return nil, err
	}

	g.placeNormalRooms(grid, byCategory, &accepted, result)

	if err := g.placeBossRoom(grid, byCategory, &accepted, start); err != nil {
		return nil, err
	}

	g.placeSpecialRooms(grid, byCategory, &accepted, result)

	layout, placements := g.materialize(grid, accepted)
	result.Layout = layout

	if err := g.wireConnections(layout, placements, result); err != nil {
		return nil, err
	}

	slog.Info("dungeon layout generated",
		"rooms", len(accepted),
		"normal_target", result.NormalTarget,
		"normal_placed", result.NormalPlaced,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// placeStartRoom places the start template near the grid center with a
// random jitter of min(width,height)/4 cells. A single attempt is
// made; an invalid position fails the whole run so the caller can
// retry with a fresh seed.
func (g *LayoutGenerator) placeStartRoom(
	grid *Grid,
	byCategory map[entities.RoomCategory][]entities.RoomTemplate,
	accepted *[]*Placement,
) (*Placement, error) {
	template := byCategory[entities.CategoryStart][0]

	pos := entities.Position{
		X: (grid.Width() - template.Width) / 2,
		Y: (grid.Height() - template.Height) / 2,
	}
	jitter := minInt(grid.Width(), grid.Height()) / 4
	if jitter > 0 {
		pos.X += g.rng.Intn(2*jitter+1) - jitter
		pos.Y += g.rng.Intn(2*jitter+1) - jitter
	}

	placement := NewPlacement(template, pos, g.rng)
	if ok, reason := placement.Validate(grid, *accepted); !ok {
		return nil, errors.FailedPreconditionf("start room placement failed: %s", reason)
	}

	g.accept(grid, accepted, placement)
	return placement, nil
}

// placeNormalRooms performs bounded random retry search toward a target
// count drawn uniformly from [MinRooms, MaxRooms]. A shortfall is
// logged, not fatal.
func (g *LayoutGenerator) placeNormalRooms(
	grid *Grid,
	byCategory map[entities.RoomCategory][]entities.RoomTemplate,
	accepted *[]*Placement,
	result *GenerationResult,
) {
	templates := byCategory[entities.CategoryNormal]

	target := g.level.MinRooms
	if span := g.level.MaxRooms - g.level.MinRooms; span > 0 {
		target += g.rng.Intn(span + 1)
	}
	result.NormalTarget = target

	if len(templates) == 0 {
		if target > 0 {
			result.Warnings = append(result.Warnings, "no normal room templates configured")
		}
		return
	}

	placed := 0
	for attempt := 0; attempt < normalRoomAttempts && placed < target; attempt++ {
		template := templates[g.rng.Intn(len(templates))]
		pos, ok := g.randomFit(grid, template)
		if !ok {
			continue
		}

		placement := NewPlacement(template, pos, g.rng)
		if ok, _ := placement.Validate(grid, *accepted); !ok {
			continue
		}

		g.accept(grid, accepted, placement)
		placed++
	}
	result.NormalPlaced = placed

	if placed < target {
		warning := fmt.Sprintf("normal room target not reached: placed %d of %d", placed, target)
		result.Warnings = append(result.Warnings, warning)
		slog.Warn("normal room attempt budget exhausted",
			"placed", placed,
			"target", target,
			"attempts", normalRoomAttempts,
		)
	}
}

// placeBossRoom scans every position the boss footprint could occupy
// and takes the valid one farthest from the start room, first found
// winning ties. No valid position fails the run: a dungeon without a
// boss room is invalid.
func (g *LayoutGenerator) placeBossRoom(
	grid *Grid,
	byCategory map[entities.RoomCategory][]entities.RoomTemplate,
	accepted *[]*Placement,
	start *Placement,
) error {
	template := byCategory[entities.CategoryBoss][0]

	var best *Placement
	bestDist := -1.0
	for y := 0; y+template.Height <= grid.Height(); y++ {
		for x := 0; x+template.Width <= grid.Width(); x++ {
			candidate := NewPlacement(template, entities.Position{X: x, Y: y}, g.rng)
			if ok, _ := candidate.Validate(grid, *accepted); !ok {
				continue
			}
			if dist := candidate.DistanceTo(start); dist > bestDist {
				bestDist = dist
				best = candidate
			}
		}
	}

	if best == nil {
		return errors.FailedPrecondition("no valid position for boss room")
	}

	g.accept(grid, accepted, best)
	return nil
}

// placeSpecialRooms places the optional treasure, shop, and secret
// rooms. Each is independent and omitted without error when no
// position is found.
func (g *LayoutGenerator) placeSpecialRooms(
	grid *Grid,
	byCategory map[entities.RoomCategory][]entities.RoomTemplate,
	accepted *[]*Placement,
	result *GenerationResult,
) {
	// Treasure prefers a dead-end position
	g.placeSpecialRoom(grid, byCategory, accepted, result, entities.CategoryTreasure, func(p *Placement) bool {
		return countPossibleConnections(grid, p) == 1
	})

	// Shop prefers to be accessible but not a hub
	g.placeSpecialRoom(grid, byCategory, accepted, result, entities.CategoryShop, func(p *Placement) bool {
		connections := countPossibleConnections(grid, p)
		return connections >= 2 && connections <= 3
	})

	// Secret rooms only appear in some runs, hugging the boundary.
	// The inclusion roll happens whether or not a template exists so
	// the rng sequence stays stable across configurations.
	includeSecret := g.rng.Float64() < secretRoomChance
	if includeSecret {
		g.placeSpecialRoom(grid, byCategory, accepted, result, entities.CategorySecret, func(p *Placement) bool {
			return p.touchesBoundary(grid)
		})
	}
}

// placeSpecialRoom tries the preferred predicate within the attempt
// budget, then falls back to the generic random search used for normal
// rooms
func (g *LayoutGenerator) placeSpecialRoom(
	grid *Grid,
	byCategory map[entities.RoomCategory][]entities.RoomTemplate,
	accepted *[]*Placement,
	result *GenerationResult,
	category entities.RoomCategory,
	prefer func(*Placement) bool,
) {
	templates := byCategory[category]
	if len(templates) == 0 {
		return
	}
	template := templates[0]

	for attempt := 0; attempt < specialRoomAttempts; attempt++ {
		pos, ok := g.randomFit(grid, template)
		if !ok {
			break
		}
		placement := NewPlacement(template, pos, g.rng)
		if ok, _ := placement.Validate(grid, *accepted); ok && prefer(placement) {
			g.accept(grid, accepted, placement)
			return
		}
	}

	for attempt := 0; attempt < specialRoomAttempts; attempt++ {
		pos, ok := g.randomFit(grid, template)
		if !ok {
			break
		}
		placement := NewPlacement(template, pos, g.rng)
		if ok, _ := placement.Validate(grid, *accepted); ok {
			g.accept(grid, accepted, placement)
			return
		}
	}

	warning := fmt.Sprintf("%s room omitted: no valid position found", category)
	result.Warnings = append(result.Warnings, warning)
	slog.Info("special room omitted", "category", category)
}

// materialize converts accepted placements into room instances in
// placement order (ties broken by priority, then acceptance sequence)
// and resolves their spawn points. The returned placements slice is
// aligned with room handles.
func (g *LayoutGenerator) materialize(grid *Grid, accepted []*Placement) (*DungeonLayout, []*Placement) {
	ordered := make([]*Placement, len(accepted))
	copy(ordered, accepted)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].Priority > ordered[j].Priority
	})

	layout := NewDungeonLayout(grid.Width(), grid.Height())
	for _, placement := range ordered {
		spawns, err := ResolveSpawns(placement.Template, placement.Position, g.roller)
		if err != nil {
			// Seeded rollers cannot fail; an injected roller that
			// does just leaves the room empty.
			slog.Warn("spawn resolution failed", "template", placement.Template.ID, "error", err)
			spawns = nil
		}
		layout.AddRoom(placement.ToData(), spawns)
	}
	return layout, ordered
}

// wireConnections joins every non-start room to its nearest
// already-connected neighbor with spare connection capacity, walking
// rooms in materialization order. The result is a spanning tree rooted
// at the start room: isolated categories keep exactly their single
// edge and every room stays reachable.
func (g *LayoutGenerator) wireConnections(layout *DungeonLayout, placements []*Placement, result *GenerationResult) error {
	startRoom := layout.GetStartRoom()
	if startRoom == nil {
		return errors.Internal("layout has no start room")
	}

	connected := map[int]bool{startRoom.Index(): true}
	for index := range placements {
		if index == startRoom.Index() {
			continue
		}

		best := g.pickNeighbor(layout, placements, connected, index, true)
		if best < 0 {
			// Every connected room is at capacity; attach to the
			// nearest one anyway rather than strand the room.
			best = g.pickNeighbor(layout, placements, connected, index, false)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("room %d exceeded neighbor connection capacity", index))
		}
		if best < 0 {
			return errors.Internalf("no connectable neighbor for room %d", index)
		}

		corridor := corridorBetween(placements[index], placements[best])
		if err := layout.ConnectRooms(index, best, corridor); err != nil {
			return err
		}
		connected[index] = true
	}
	return nil
}

// pickNeighbor returns the connected room nearest to index, or -1. With
// respectCapacity set, rooms already at their connection maximum are
// skipped.
func (g *LayoutGenerator) pickNeighbor(
	layout *DungeonLayout,
	placements []*Placement,
	connected map[int]bool,
	index int,
	respectCapacity bool,
) int {
	best := -1
	bestDist := 0.0
	for candidate := range placements {
		if !connected[candidate] || candidate == index {
			continue
		}
		if respectCapacity && layout.ConnectionCount(candidate) >= placements[candidate].MaxConnections {
			continue
		}
		dist := placements[index].DistanceTo(placements[candidate])
		if best < 0 || dist < bestDist || (dist == bestDist && candidate < best) {
			best = candidate
			bestDist = dist
		}
	}
	return best
}

// randomFit returns a uniformly random position at which the template's
// footprint fits inside the grid
func (g *LayoutGenerator) randomFit(grid *Grid, template entities.RoomTemplate) (entities.Position, bool) {
	spanX := grid.Width() - template.Width
	spanY := grid.Height() - template.Height
	if spanX < 0 || spanY < 0 {
		return entities.Position{}, false
	}
	return entities.Position{
		X: g.rng.Intn(spanX + 1),
		Y: g.rng.Intn(spanY + 1),
	}, true
}

// accept records the placement and reserves its footprint on the grid
func (g *LayoutGenerator) accept(grid *Grid, accepted *[]*Placement, placement *Placement) {
	*accepted = append(*accepted, placement)
	grid.SetRegionOccupied(placement.Position, placement.Width, placement.Height, true)
}

// countPossibleConnections counts the axis-aligned directions in which
// the placement could gain a connection: the cell just outside the
// middle of each footprint side must exist on the grid, whether it is
// open corridor space or already adjoins a placed room. Grid edges
// remove directions, so boundary positions read as near-dead-ends.
func countPossibleConnections(grid *Grid, p *Placement) int {
	probes := []entities.Position{
		{X: p.Position.X + p.Width/2, Y: p.Position.Y - 1},
		{X: p.Position.X + p.Width/2, Y: p.Position.Y + p.Height},
		{X: p.Position.X - 1, Y: p.Position.Y + p.Height/2},
		{X: p.Position.X + p.Width, Y: p.Position.Y + p.Height/2},
	}

	count := 0
	for _, probe := range probes {
		if grid.IsValidPosition(probe) {
			count++
		}
	}
	return count
}

// corridorBetween returns the corridor endpoints for two placements:
// the cell of each footprint nearest the other room's center
func corridorBetween(a, b *Placement) entities.CorridorData {
	return entities.CorridorData{
		From: clampToFootprint(b.Center(), a),
		To:   clampToFootprint(a.Center(), b),
	}
}

func clampToFootprint(pos entities.Position, p *Placement) entities.Position {
	return entities.Position{
		X: clampInt(pos.X, p.Position.X, p.Position.X+p.Width-1),
		Y: clampInt(pos.Y, p.Position.Y, p.Position.Y+p.Height-1),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
