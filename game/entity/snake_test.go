package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swipe-snake/game/types"
)

func TestSnakeMoveAndTail(t *testing.T) {
	s := NewSnake(types.Point{X: 9, Y: 10}, types.Right)
	s.Move(types.Point{X: 10, Y: 10})
	assert.Equal(t, []types.Point{{X: 10, Y: 10}, {X: 9, Y: 10}}, s.Body)
	assert.Equal(t, types.Point{X: 10, Y: 10}, s.GetHead())

	s.RemoveTail()
	assert.Equal(t, []types.Point{{X: 10, Y: 10}}, s.Body)
	assert.Equal(t, 1, s.Len())
}

func TestSnakeDirectionBuffer(t *testing.T) {
	s := NewSnake(types.Point{}, types.Right)

	assert.False(t, s.SetDirection(types.Left), "reverse of active must be rejected")
	assert.Equal(t, types.Right, s.NextDirection)

	assert.True(t, s.SetDirection(types.Up))
	// Still checked against the active direction, not the buffered one.
	assert.True(t, s.SetDirection(types.Down))
	assert.Equal(t, types.Down, s.NextDirection)
	assert.Equal(t, types.Right, s.Direction)

	assert.Equal(t, types.Down, s.CommitDirection())
	assert.False(t, s.SetDirection(types.Up))
	assert.False(t, s.SetDirection(types.Direction(9)))
}

func TestSnakeOccupies(t *testing.T) {
	s := &Snake{Body: []types.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}}}
	assert.True(t, s.Occupies(types.Point{X: 1, Y: 1}, false))
	assert.False(t, s.Occupies(types.Point{X: 1, Y: 1}, true))
	assert.True(t, s.Occupies(types.Point{X: 1, Y: 3}, true))

	cells := s.Cells()
	cells[0] = types.Point{X: 5, Y: 5}
	assert.Equal(t, types.Point{X: 1, Y: 1}, s.GetHead())
}
