package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swipe-snake/game/entity"
	"swipe-snake/game/types"
)

func TestWrap(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 20, Height: 20})
	tests := []struct {
		in, want types.Point
	}{
		{types.Point{X: 20, Y: 10}, types.Point{X: 0, Y: 10}},
		{types.Point{X: -1, Y: 10}, types.Point{X: 19, Y: 10}},
		{types.Point{X: 5, Y: -1}, types.Point{X: 5, Y: 19}},
		{types.Point{X: 5, Y: 20}, types.Point{X: 5, Y: 0}},
		{types.Point{X: 7, Y: 7}, types.Point{X: 7, Y: 7}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cm.Wrap(tt.in), "wrap %s", tt.in)
	}
}

func TestIsWallCollision(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 20, Height: 10})
	assert.False(t, cm.IsWallCollision(types.Point{X: 19, Y: 9}))
	assert.True(t, cm.IsWallCollision(types.Point{X: 20, Y: 0}))
	assert.True(t, cm.IsWallCollision(types.Point{X: 0, Y: 10}))
	assert.True(t, cm.IsWallCollision(types.Point{X: -1, Y: 0}))
}

func TestCheckCollision(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 20, Height: 20})

	t.Run("self before obstacle", func(t *testing.T) {
		snake := &entity.Snake{Body: []types.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 2}}}
		got := cm.CheckCollision(snake, []types.Point{{X: 2, Y: 2}})
		assert.Equal(t, types.SelfCollision, got)
	})

	t.Run("obstacle", func(t *testing.T) {
		snake := &entity.Snake{Body: []types.Point{{X: 4, Y: 4}, {X: 3, Y: 4}}}
		assert.Equal(t, types.ObstacleCollision, cm.CheckCollision(snake, []types.Point{{X: 4, Y: 4}}))
	})

	t.Run("clear", func(t *testing.T) {
		snake := &entity.Snake{Body: []types.Point{{X: 4, Y: 4}, {X: 3, Y: 4}}}
		assert.Equal(t, types.NoCollision, cm.CheckCollision(snake, nil))
	})
}

func TestValidateSpawnPosition(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 5, Height: 5})
	snake := &entity.Snake{Body: []types.Point{{X: 1, Y: 1}}}
	obstacles := []types.Point{{X: 2, Y: 2}}

	assert.False(t, cm.ValidateSpawnPosition(types.Point{X: 1, Y: 1}, snake, obstacles))
	assert.False(t, cm.ValidateSpawnPosition(types.Point{X: 2, Y: 2}, snake, obstacles))
	assert.False(t, cm.ValidateSpawnPosition(types.Point{X: 5, Y: 0}, snake, obstacles))
	assert.True(t, cm.ValidateSpawnPosition(types.Point{X: 3, Y: 3}, snake, obstacles))
	assert.True(t, cm.ValidateSpawnPosition(types.Point{X: 3, Y: 3}, nil))
}
