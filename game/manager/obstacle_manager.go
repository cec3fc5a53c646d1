package manager

import (
	"golang.org/x/exp/rand"

	"swipe-snake/game/entity"
	"swipe-snake/game/types"
)

type ObstacleManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	maxAttempts  int
}

func NewObstacleManager(grid types.Grid, collisionMgr *CollisionManager, rng *rand.Rand) *ObstacleManager {
	return &ObstacleManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
		maxAttempts:  types.MaxObstacleAttempts,
	}
}

// BatchSize is floor(score/10)*5.
func BatchSize(score int) int {
	if score <= 0 {
		return 0
	}
	return (score / types.ObstacleScoreStep) * types.ObstaclesPerStep
}

// ShouldRegenerate reports whether reaching score triggers a new batch.
func ShouldRegenerate(score int) bool {
	return score > 0 && score%types.ObstacleScoreStep == 0
}

// Generate builds a fresh obstacle set for score. Each obstacle gets a bounded
// number of attempts to land on a cell free of the snake, the food and the
// obstacles already placed; an obstacle that runs out of attempts is skipped.
// The second result is how many were skipped.
func (om *ObstacleManager) Generate(score int, snake *entity.Snake, food types.Point) ([]types.Point, int) {
	want := BatchSize(score)
	obstacles := make([]types.Point, 0, want)
	foodCell := []types.Point{food}
	skipped := 0

	for i := 0; i < want; i++ {
		placed := false
		for attempt := 0; attempt < om.maxAttempts; attempt++ {
			pos := types.Point{
				X: om.rng.Intn(om.grid.Width),
				Y: om.rng.Intn(om.grid.Height),
			}
			if om.collisionMgr.ValidateSpawnPosition(pos, snake, foodCell, obstacles) {
				obstacles = append(obstacles, pos)
				placed = true
				break
			}
		}
		if !placed {
			skipped++
		}
	}
	return obstacles, skipped
}
