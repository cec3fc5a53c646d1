package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipe-snake/game"
	"swipe-snake/game/manager"
	"swipe-snake/game/scheduler"
	"swipe-snake/game/types"
	"swipe-snake/store"
)

func TestSwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   types.Direction
		ok     bool
	}{
		{"tap", 3, -9, 0, false},
		{"right", 40, 5, types.Right, true},
		{"left", -40, 12, types.Left, true},
		{"down", 2, 30, types.Down, true},
		{"up", -8, -30, types.Up, true},
		{"just past threshold", 10, 0, types.Right, true},
		{"tie is vertical", 20, -20, types.Up, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := Swipe(tt.dx, tt.dy)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, dir)
			}
		})
	}
}

func TestKeyMapping(t *testing.T) {
	assert.Equal(t, TurnCommand(types.Up), FromRune('W'))
	assert.Equal(t, TurnCommand(types.Left), FromRune('a'))
	assert.Equal(t, Command{Kind: SetLevel, Level: 4}, FromRune('4'))
	assert.Equal(t, Command{Kind: SaveSettings}, FromRune('v'))
	assert.Equal(t, None, FromRune('z').Kind)

	assert.Equal(t, TurnCommand(types.Down), FromName("Down"))
	assert.Equal(t, Command{Kind: StartRestart}, FromName("enter"))
	assert.Equal(t, Command{Kind: Quit}, FromName("esc"))
	assert.Equal(t, None, FromName("f1").Kind)

	assert.Equal(t, "toggle-wall", ToggleWall.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestSettingsEditorDirtyFlag(t *testing.T) {
	e := NewSettingsEditor(types.DefaultSettings())
	assert.False(t, e.Dirty())

	require.True(t, e.Apply(Command{Kind: ToggleWall}))
	assert.True(t, e.Dirty())
	assert.Equal(t, types.Teleport, e.Pending().WallMode)

	e.Apply(Command{Kind: ToggleWall})
	assert.False(t, e.Dirty(), "toggling back leaves nothing to save")

	e.Apply(Command{Kind: SetLevel, Level: 9})
	assert.Equal(t, types.MaxLevel, e.Pending().Level)

	e.Apply(Command{Kind: ToggleObstacles})
	assert.False(t, e.Pending().ObstaclesEnabled)

	e.Apply(Command{Kind: CycleFoodExpiry})
	assert.Equal(t, 10*time.Second, e.Pending().FoodExpiry)

	assert.False(t, e.Apply(Command{Kind: Quit}))

	saved := e.Commit()
	assert.False(t, e.Dirty())
	assert.Equal(t, saved, e.Saved())

	e.Apply(Command{Kind: ToggleObstacles})
	e.Discard()
	assert.False(t, e.Dirty())
}

type toggle struct{ on bool }

func (s *toggle) Toggle() bool {
	s.on = !s.on
	return s.on
}

func newController(t *testing.T) (*Controller, *game.Game, *manager.StateManager, *toggle) {
	t.Helper()
	sm, err := manager.NewStateManager(store.NewMemoryStore())
	require.NoError(t, err)
	s := types.DefaultSettings()
	g := game.NewGame(types.Grid{Width: 20, Height: 20}, sm, game.WithSeed(3), game.WithSettings(s))
	auto := &toggle{}
	c := NewController(scheduler.New(g, scheduler.Hooks{}), s, sm, auto)
	return c, g, sm, auto
}

func TestControllerLifecycle(t *testing.T) {
	c, g, _, _ := newController(t)
	now := time.Now()

	c.Handle(Command{Kind: PauseResume}, now)
	assert.Equal(t, types.NotStarted, g.State())

	c.Handle(Command{Kind: StartRestart}, now)
	assert.Equal(t, types.Running, g.State())

	c.Handle(TurnCommand(types.Up), now)
	c.Handle(Command{Kind: PauseResume}, now)
	assert.Equal(t, types.Paused, g.State())

	c.Handle(Command{Kind: PauseResume}, now)
	assert.Equal(t, types.Running, g.State())

	first := g.UUID
	c.Handle(Command{Kind: StartRestart}, now)
	assert.Equal(t, types.Running, g.State())
	assert.NotEqual(t, first, g.UUID, "restart begins a new session")

	assert.True(t, c.Handle(Command{Kind: Quit}, now))
}

func TestControllerSaveResetsAndPersists(t *testing.T) {
	c, g, sm, _ := newController(t)
	now := time.Now()

	c.Handle(Command{Kind: StartRestart}, now)
	c.Handle(Command{Kind: ToggleWall}, now)
	c.Handle(Command{Kind: SetLevel, Level: 5}, now)
	assert.Equal(t, types.Classic, g.Settings().WallMode, "edits wait for save")
	assert.True(t, c.Editor().Dirty())

	c.Handle(Command{Kind: SaveSettings}, now)
	assert.Equal(t, types.NotStarted, g.State())
	assert.Equal(t, types.Teleport, g.Settings().WallMode)
	assert.Equal(t, 5, g.Settings().Level)
	assert.False(t, c.Editor().Dirty())

	loaded := sm.LoadSettings()
	assert.Equal(t, types.Teleport, loaded.WallMode)
	assert.Equal(t, 5, loaded.Level)
}

func TestControllerSaveWithoutChangesKeepsSession(t *testing.T) {
	c, g, _, _ := newController(t)
	now := time.Now()

	c.Handle(Command{Kind: StartRestart}, now)
	c.Handle(Command{Kind: SaveSettings}, now)
	assert.Equal(t, types.Running, g.State())
}

func TestControllerTogglesAutopilot(t *testing.T) {
	c, _, _, auto := newController(t)
	c.Handle(Command{Kind: ToggleAutopilot}, time.Now())
	assert.True(t, auto.on)
	c.Handle(Command{Kind: ToggleAutopilot}, time.Now())
	assert.False(t, auto.on)
}
