package manager

import (
	"golang.org/x/exp/rand"

	"swipe-snake/game/entity"
	"swipe-snake/game/types"
)

// randomTriesPerCell bounds random food attempts before falling back to a scan.
const randomTriesPerCell = 4

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// GenerateFood picks a uniformly random free cell. After a bounded number of
// misses it scans the grid from a random offset; ok is false only when the
// snake and obstacles cover every cell.
func (fm *FoodManager) GenerateFood(snake *entity.Snake, obstacles []types.Point) (types.Point, bool) {
	tries := fm.grid.Cells() * randomTriesPerCell
	for i := 0; i < tries; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake, obstacles) {
			return food, true
		}
	}
	return fm.scan(snake, obstacles)
}

func (fm *FoodManager) scan(snake *entity.Snake, obstacles []types.Point) (types.Point, bool) {
	cells := fm.grid.Cells()
	if cells == 0 {
		return types.Point{}, false
	}
	offset := fm.rng.Intn(cells)
	for i := 0; i < cells; i++ {
		idx := (offset + i) % cells
		food := types.Point{X: idx % fm.grid.Width, Y: idx / fm.grid.Width}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake, obstacles) {
			return food, true
		}
	}
	return types.Point{}, false
}
