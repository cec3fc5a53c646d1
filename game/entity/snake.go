package entity

import (
	"swipe-snake/game/types"
)

// Snake is an ordered list of cells, head first.
type Snake struct {
	Body []types.Point
	// Direction is the active direction, applied on the current tick.
	Direction types.Direction
	// NextDirection buffers the latest accepted intent until the next tick.
	NextDirection types.Direction
}

func NewSnake(startPos types.Point, dir types.Direction) *Snake {
	return &Snake{
		Body:          []types.Point{startPos},
		Direction:     dir,
		NextDirection: dir,
	}
}

// Move puts newHead in front of the body.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection buffers dir unless it reverses the active direction.
// It reports whether the intent was accepted.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if !dir.Valid() || dir == s.Direction.Opposite() {
		return false
	}
	s.NextDirection = dir
	return true
}

// CommitDirection makes the buffered direction active and returns it.
func (s *Snake) CommitDirection() types.Direction {
	s.Direction = s.NextDirection
	return s.Direction
}

// Occupies reports whether p is part of the body; the head is skipped when skipHead is set.
func (s *Snake) Occupies(p types.Point, skipHead bool) bool {
	start := 0
	if skipHead {
		start = 1
	}
	for i := start; i < len(s.Body); i++ {
		if s.Body[i] == p {
			return true
		}
	}
	return false
}

// Cells returns a copy of the body safe to hand to a renderer.
func (s *Snake) Cells() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}
