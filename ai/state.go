package ai

import (
	"fmt"

	"swipe-snake/game"
	"swipe-snake/game/types"
)

// State is what the agent sees: where the food lies and which of the three
// reachable cells would kill it.
type State struct {
	// FoodDir is the sign of the food offset from the head on each axis.
	FoodDir [2]int
	// Danger is indexed by Action: left, forward, right of the heading.
	Danger [numActions]bool
}

func (s State) Key() string {
	return fmt.Sprintf("%d,%d|%d%d%d", s.FoodDir[0], s.FoodDir[1],
		boolToInt(s.Danger[TurnLeft]), boolToInt(s.Danger[Forward]), boolToInt(s.Danger[TurnRight]))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Heading resolves a relative action against the current direction.
func Heading(dir types.Direction, a Action) types.Direction {
	switch a {
	case TurnLeft:
		return dir.TurnLeft()
	case TurnRight:
		return dir.TurnRight()
	}
	return dir
}

// Observe derives the agent state from a snapshot.
func Observe(snap game.Snapshot) State {
	var s State
	head, ok := snap.Head()
	if !ok {
		return s
	}

	if snap.HasFood {
		dx, dy := offset(snap, head, snap.Food)
		s.FoodDir = [2]int{sign(dx), sign(dy)}
	}

	blocked := make(map[types.Point]bool, len(snap.Snake)+len(snap.Obstacles))
	// The tail moves away on the next tick unless food is eaten.
	for _, p := range snap.Snake[:len(snap.Snake)-1] {
		blocked[p] = true
	}
	for _, p := range snap.Obstacles {
		blocked[p] = true
	}

	for a := TurnLeft; a <= TurnRight; a++ {
		next := head.Add(Heading(snap.Direction, a).Delta())
		if !snap.Grid.Contains(next) {
			if snap.Settings.WallMode != types.Teleport {
				s.Danger[a] = true
				continue
			}
			next = wrap(snap.Grid, next)
		}
		s.Danger[a] = blocked[next]
	}
	return s
}

// Distance is the Manhattan distance from head to food, measured through the
// walls in teleport mode.
func Distance(snap game.Snapshot) int {
	head, ok := snap.Head()
	if !ok || !snap.HasFood {
		return 0
	}
	dx, dy := offset(snap, head, snap.Food)
	return abs(dx) + abs(dy)
}

// offset is the shortest displacement from a to b.
func offset(snap game.Snapshot, a, b types.Point) (int, int) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if snap.Settings.WallMode == types.Teleport {
		dx = shortest(dx, snap.Grid.Width)
		dy = shortest(dy, snap.Grid.Height)
	}
	return dx, dy
}

func shortest(d, n int) int {
	if d > n/2 {
		return d - n
	}
	if d < -n/2 {
		return d + n
	}
	return d
}

func wrap(g types.Grid, p types.Point) types.Point {
	return types.Point{
		X: ((p.X % g.Width) + g.Width) % g.Width,
		Y: ((p.Y % g.Height) + g.Height) % g.Height,
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
