package manager

import (
	"swipe-snake/game/entity"
	"swipe-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// IsWallCollision checks if a position is outside the grid
func (cm *CollisionManager) IsWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// Wrap maps an out-of-bounds position to the opposite edge.
func (cm *CollisionManager) Wrap(pos types.Point) types.Point {
	return types.Point{
		X: wrap(pos.X, cm.grid.Width),
		Y: wrap(pos.Y, cm.grid.Height),
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// IsSelfCollision checks the head against the rest of the body.
// The head must already be in front of the body.
func (cm *CollisionManager) IsSelfCollision(snake *entity.Snake) bool {
	return snake.Occupies(snake.GetHead(), true)
}

// IsObstacleCollision checks if a position hits any obstacle
func (cm *CollisionManager) IsObstacleCollision(pos types.Point, obstacles []types.Point) bool {
	return contains(obstacles, pos)
}

// CheckCollision classifies a snake whose new head has just been inserted.
// Self collisions are reported before obstacle collisions.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake, obstacles []types.Point) types.CollisionType {
	if cm.IsSelfCollision(snake) {
		return types.SelfCollision
	}
	if cm.IsObstacleCollision(snake.GetHead(), obstacles) {
		return types.ObstacleCollision
	}
	return types.NoCollision
}

// ValidateSpawnPosition checks if a position is free for food or an obstacle.
// Every slice in blocked is treated as occupied cells.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake, blocked ...[]types.Point) bool {
	if cm.IsWallCollision(pos) {
		return false
	}
	if snake != nil && snake.Occupies(pos, false) {
		return false
	}
	for _, cells := range blocked {
		if contains(cells, pos) {
			return false
		}
	}
	return true
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}

func contains(cells []types.Point, pos types.Point) bool {
	for _, c := range cells {
		if c == pos {
			return true
		}
	}
	return false
}
