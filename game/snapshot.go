package game

import (
	"time"

	"swipe-snake/game/types"
)

// Events flags what changed during the operation that produced a Snapshot.
type Events struct {
	FoodEaten        bool
	FoodPlaced       bool // food moved; the host re-arms the expiry timer
	ObstaclesChanged bool
	ObstaclesSkipped int
	NewHighScore     bool
	DirectionChanged bool
}

// Snapshot is a read-only view of the engine handed to renderers. Slices are copies.
type Snapshot struct {
	SessionID string
	State     types.State
	Grid      types.Grid
	Snake     []types.Point
	Direction types.Direction
	Food      types.Point
	HasFood   bool
	Obstacles []types.Point
	Score     int
	HighScore int
	Interval  time.Duration
	Settings  types.Settings

	// Terminal is set on the snapshot of the tick that ended the session.
	Terminal bool
	Cause    types.CollisionType
	Events   Events
}

// Head returns the first snake cell, or false for an empty snapshot.
func (s Snapshot) Head() (types.Point, bool) {
	if len(s.Snake) == 0 {
		return types.Point{}, false
	}
	return s.Snake[0], true
}
