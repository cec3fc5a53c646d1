package types

import (
	"fmt"
	"strings"
)

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside [0,Width) x [0,Height).
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Point is a single cell on the grid (column, row).
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four cardinal moves
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta converts a Direction into a one-cell displacement (Y grows downwards).
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the 180 degree reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return d
	}
}

// TurnLeft returns the direction after a 90 degree counter-clockwise turn.
func (d Direction) TurnLeft() Direction {
	return Directions[(int(d)+3)%4]
}

// TurnRight returns the direction after a 90 degree clockwise turn.
func (d Direction) TurnRight() Direction {
	return Directions[(int(d)+1)%4]
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection accepts the names produced by String, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return Up, nil
	case "RIGHT":
		return Right, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}

// WallMode decides what happens when the head crosses the grid boundary
type WallMode int

const (
	// Classic ends the session on a boundary crossing.
	Classic WallMode = iota
	// Teleport wraps the head to the opposite edge.
	Teleport
)

func (m WallMode) String() string {
	if m == Teleport {
		return "teleport"
	}
	return "classic"
}

// Toggle flips between Classic and Teleport.
func (m WallMode) Toggle() WallMode {
	if m == Teleport {
		return Classic
	}
	return Teleport
}

// ParseWallMode accepts "classic" or "teleport".
func ParseWallMode(s string) (WallMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return Classic, nil
	case "teleport":
		return Teleport, nil
	}
	return Classic, fmt.Errorf("unknown wall mode %q", s)
}

// State is the session lifecycle state
type State int

const (
	NotStarted State = iota
	Running
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Idle reports whether no session is in progress (settings may change).
func (s State) Idle() bool {
	return s == NotStarted || s == GameOver
}

// CollisionType represents what ended a session
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	ObstacleCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case ObstacleCollision:
		return "obstacle"
	default:
		return "none"
	}
}

// Game constants
const (
	DefaultGridSize = 20

	StartX = 9
	StartY = 10

	ObstacleScoreStep   = 10 // Obstacles regenerate every time score hits a multiple of this
	ObstaclesPerStep    = 5  // Obstacles added per completed score step
	MaxObstacleAttempts = 50 // Placement attempts before an obstacle is skipped

	MaxScoreHistory = 50
)
