package dungeon

import (
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// ResolveSpawns rolls each of the template's spawn points against its
// spawn chance and returns the activated spawns at absolute grid
// positions. A chance of 1.0 always activates; 0 never does.
func ResolveSpawns(template entities.RoomTemplate, origin entities.Position, roller dice.Roller) ([]entities.SpawnData, error) {
	var spawns []entities.SpawnData
	for _, point := range template.SpawnPoints {
		active, err := rollChance(point.Chance, roller)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll spawn point %s", point.ID)
		}
		if !active {
			continue
		}

		spawns = append(spawns, entities.SpawnData{
			SpawnPointID: point.ID,
			Kind:         point.Kind,
			Position: entities.Position{
				X: origin.X + point.Offset.X,
				Y: origin.Y + point.Offset.Y,
			},
		})
	}
	return spawns, nil
}

// rollChance resolves a 0.0-1.0 probability with a percentile roll
func rollChance(chance float64, roller dice.Roller) (bool, error) {
	if chance >= 1.0 {
		return true, nil
	}
	if chance <= 0 {
		return false, nil
	}

	roll, err := roller.Roll(100)
	if err != nil {
		return false, err
	}
	return float64(roll) <= chance*100, nil
}

// seededRoller adapts a seeded rand source to the dice.Roller
// interface so spawn resolution stays reproducible within a
// generation run
type seededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller returns a dice roller backed by the given source
func NewSeededRoller(rng *rand.Rand) dice.Roller {
	return &seededRoller{rng: rng}
}

// Roll returns a uniform value in [1, size]
func (r *seededRoller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	return 1 + r.rng.Intn(size), nil
}

// RollN rolls count dice of the given size
func (r *seededRoller) RollN(count, size int) ([]int, error) {
	results := make([]int, 0, count)
	for i := 0; i < count; i++ {
		roll, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results = append(results, roll)
	}
	return results, nil
}
