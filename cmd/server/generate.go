package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

var (
	genSeed     int64
	genWidth    int
	genHeight   int
	genMinRooms int
	genMaxRooms int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a layout and print it",
	Long:  `Generate a dungeon layout locally with a built-in template set and print an ASCII rendering, useful for eyeballing seeds and level parameters.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "generation seed (0 picks one from the current time)")
	generateCmd.Flags().IntVar(&genWidth, "width", 20, "grid width")
	generateCmd.Flags().IntVar(&genHeight, "height", 20, "grid height")
	generateCmd.Flags().IntVar(&genMinRooms, "min-rooms", 5, "minimum normal room count")
	generateCmd.Flags().IntVar(&genMaxRooms, "max-rooms", 8, "maximum normal room count")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	generator, err := dungeon.NewLayoutGenerator(&dungeon.GeneratorConfig{
		Level: defaultLevel(),
		Rand:  rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return err
	}

	result, err := generator.Generate()
	if err != nil {
		return err
	}

	data := result.Layout.ToData()
	fmt.Printf("seed: %d\n", seed)
	fmt.Printf("rooms: %d (normal %d of %d)\n", len(data.Rooms), result.NormalPlaced, result.NormalTarget)
	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	fmt.Println()
	fmt.Print(renderLayout(data))

	fmt.Println()
	for _, room := range data.Rooms {
		fmt.Printf("  [%d] %-8s %dx%d at (%d,%d)\n",
			room.Index,
			room.Placement.Category,
			room.Placement.Width, room.Placement.Height,
			room.Placement.Position.X, room.Placement.Position.Y,
		)
	}
	return nil
}

func defaultLevel() *entities.LevelData {
	return &entities.LevelData{
		GridWidth:  genWidth,
		GridHeight: genHeight,
		MinRooms:   genMinRooms,
		MaxRooms:   genMaxRooms,
		Templates: []entities.RoomTemplate{
			{ID: "start-hall", Category: entities.CategoryStart, Width: 3, Height: 3},
			{
				ID: "normal-cell", Category: entities.CategoryNormal, Width: 3, Height: 3,
				SpawnPoints: []entities.SpawnPoint{
					{ID: "mob-a", Kind: entities.SpawnEnemy, Offset: entities.Position{X: 1, Y: 1}, Chance: 0.6},
					{ID: "loot-a", Kind: entities.SpawnItem, Offset: entities.Position{X: 2, Y: 2}, Chance: 0.3},
				},
			},
			{ID: "normal-wide", Category: entities.CategoryNormal, Width: 4, Height: 2},
			{
				ID: "boss-lair", Category: entities.CategoryBoss, Width: 4, Height: 4,
				SpawnPoints: []entities.SpawnPoint{
					{ID: "boss", Kind: entities.SpawnEnemy, Offset: entities.Position{X: 2, Y: 2}, Chance: 1.0},
				},
			},
			{
				ID: "treasure-vault", Category: entities.CategoryTreasure, Width: 2, Height: 2,
				SpawnPoints: []entities.SpawnPoint{
					{ID: "chest", Kind: entities.SpawnItem, Offset: entities.Position{}, Chance: 1.0},
				},
			},
			{
				ID: "shop-stall", Category: entities.CategoryShop, Width: 2, Height: 2,
				SpawnPoints: []entities.SpawnPoint{
					{ID: "keeper", Kind: entities.SpawnInteractable, Offset: entities.Position{X: 1, Y: 0}, Chance: 1.0},
				},
			},
			{ID: "secret-nook", Category: entities.CategorySecret, Width: 2, Height: 2},
		},
	}
}

var categoryGlyphs = map[entities.RoomCategory]byte{
	entities.CategoryStart:    'S',
	entities.CategoryNormal:   'n',
	entities.CategoryBoss:     'B',
	entities.CategoryTreasure: 'T',
	entities.CategoryShop:     '$',
	entities.CategorySecret:   '?',
}

// renderLayout draws room footprints and corridor endpoints on the grid
func renderLayout(data *entities.LayoutData) string {
	cells := make([][]byte, data.GridHeight)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(".", data.GridWidth))
	}

	plot := func(pos entities.Position, glyph byte) {
		if pos.Y >= 0 && pos.Y < data.GridHeight && pos.X >= 0 && pos.X < data.GridWidth {
			cells[pos.Y][pos.X] = glyph
		}
	}

	for _, conn := range data.Connections {
		// L-shaped corridor trace: horizontal leg, then vertical
		from, to := conn.Corridor.From, conn.Corridor.To
		for x := minOf(from.X, to.X); x <= maxOf(from.X, to.X); x++ {
			plot(entities.Position{X: x, Y: from.Y}, '+')
		}
		for y := minOf(from.Y, to.Y); y <= maxOf(from.Y, to.Y); y++ {
			plot(entities.Position{X: to.X, Y: y}, '+')
		}
	}

	for _, room := range data.Rooms {
		glyph := categoryGlyphs[room.Placement.Category]
		if glyph == 0 {
			glyph = '#'
		}
		for y := 0; y < room.Placement.Height; y++ {
			for x := 0; x < room.Placement.Width; x++ {
				plot(entities.Position{
					X: room.Placement.Position.X + x,
					Y: room.Placement.Position.Y + y,
				}, glyph)
			}
		}
	}

	var sb strings.Builder
	for _, row := range cells {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
