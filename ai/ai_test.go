package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"swipe-snake/game"
	"swipe-snake/game/types"
)

var grid20 = types.Grid{Width: 20, Height: 20}

func snapshot(mode types.WallMode, dir types.Direction, body []types.Point, food types.Point) game.Snapshot {
	return game.Snapshot{
		SessionID: "s1",
		State:     types.Running,
		Grid:      grid20,
		Snake:     body,
		Direction: dir,
		Food:      food,
		HasFood:   true,
		Settings:  types.Settings{WallMode: mode, Level: 3},
	}
}

func TestObserveWallDanger(t *testing.T) {
	body := []types.Point{{X: 0, Y: 5}}
	food := types.Point{X: 5, Y: 5}

	s := Observe(snapshot(types.Classic, types.Left, body, food))
	assert.True(t, s.Danger[Forward])
	assert.False(t, s.Danger[TurnLeft])
	assert.False(t, s.Danger[TurnRight])
	assert.Equal(t, [2]int{1, 0}, s.FoodDir)

	s = Observe(snapshot(types.Teleport, types.Left, body, food))
	assert.False(t, s.Danger[Forward], "teleport wraps instead of dying")
}

func TestObserveBodyAndObstacles(t *testing.T) {
	body := []types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4}, {X: 7, Y: 4}}
	snap := snapshot(types.Classic, types.Right, body, types.Point{X: 5, Y: 15})

	s := Observe(snap)
	assert.True(t, s.Danger[TurnLeft])
	assert.False(t, s.Danger[Forward])
	assert.False(t, s.Danger[TurnRight])
	assert.Equal(t, [2]int{0, 1}, s.FoodDir)

	snap.Obstacles = []types.Point{{X: 6, Y: 5}}
	s = Observe(snap)
	assert.True(t, s.Danger[Forward])
}

func TestObserveIgnoresMovingTail(t *testing.T) {
	body := []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}}
	s := Observe(snapshot(types.Classic, types.Up, body, types.Point{X: 0, Y: 0}))
	assert.False(t, s.Danger[TurnLeft])
}

func TestTeleportFoodDirectionTakesShortestWay(t *testing.T) {
	snap := snapshot(types.Teleport, types.Up, []types.Point{{X: 0, Y: 0}}, types.Point{X: 19, Y: 0})
	assert.Equal(t, [2]int{-1, 0}, Observe(snap).FoodDir)
	assert.Equal(t, 1, Distance(snap))

	snap.Settings.WallMode = types.Classic
	assert.Equal(t, [2]int{1, 0}, Observe(snap).FoodDir)
	assert.Equal(t, 19, Distance(snap))
}

func TestHeading(t *testing.T) {
	assert.Equal(t, types.Left, Heading(types.Up, TurnLeft))
	assert.Equal(t, types.Up, Heading(types.Up, Forward))
	assert.Equal(t, types.Right, Heading(types.Up, TurnRight))
	assert.Equal(t, types.Down, Heading(types.Left, TurnLeft))
}

func newTable() *QLearning {
	q := NewQLearning(rand.New(rand.NewSource(1)))
	q.Epsilon = 0
	return q
}

func TestQLearningUpdate(t *testing.T) {
	q := newTable()
	var s, next State
	next.Danger[Forward] = true

	assert.Equal(t, Forward, q.BestAction(s), "unknown states go straight")

	q.Update(s, TurnRight, 1.0, next, true)
	assert.InDelta(t, 0.1, q.QTable[s.Key()][TurnRight], 1e-9)
	assert.Equal(t, TurnRight, q.BestAction(s))

	q.Update(s, TurnLeft, 5.0, next, true)
	assert.Equal(t, TurnLeft, q.GetAction(s))
}

func TestQLearningUsesFutureValue(t *testing.T) {
	q := newTable()
	var s, next State
	next.FoodDir = [2]int{1, 0}
	q.QTable[next.Key()] = []float64{0, 2, 0}

	q.Update(s, Forward, 0, next, false)
	assert.InDelta(t, 0.1*0.9*2, q.QTable[s.Key()][Forward], 1e-9)
}

func TestEndEpisodeDecaysEpsilon(t *testing.T) {
	q := NewQLearning(rand.New(rand.NewSource(1)))
	q.Epsilon = 0.01005
	q.EndEpisode()
	q.EndEpisode()
	assert.Equal(t, 2, q.Episodes)
	assert.Equal(t, q.MinEpsilon, q.Epsilon)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "qtable.json")

	q := newTable()
	var s State
	q.QTable[s.Key()] = []float64{1, 2, 3}
	q.Episodes = 7
	require.NoError(t, q.Save(path))

	loaded := NewQLearning(rand.New(rand.NewSource(2)))
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, []float64{1, 2, 3}, loaded.QTable[s.Key()])
	assert.Equal(t, 7, loaded.Episodes)

	// Saving again averages with what is already on disk.
	loaded.QTable[s.Key()] = []float64{3, 2, 1}
	require.NoError(t, loaded.Save(path))
	again := NewQLearning(rand.New(rand.NewSource(3)))
	require.NoError(t, again.Load(path))
	assert.Equal(t, []float64{2, 2, 2}, again.QTable[s.Key()])
}

func TestLoadMissingAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	q := newTable()
	assert.NoError(t, q.Load(filepath.Join(dir, "absent.json")))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))
	assert.Error(t, q.Load(broken))

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`{"table":{"x":[1]}}`), 0o644))
	assert.Error(t, q.Load(short))
}

func TestAutopilotDisabledDoesNothing(t *testing.T) {
	a := NewAutopilot(newTable(), true)
	called := false
	a.Observe(snapshot(types.Classic, types.Right, []types.Point{{X: 5, Y: 5}}, types.Point{X: 9, Y: 5}),
		func(types.Direction) bool { called = true; return true })
	assert.False(t, called)
}

func TestAutopilotSteersAndLearnsFromDeath(t *testing.T) {
	q := newTable()
	a := NewAutopilot(q, true)
	require.True(t, a.Toggle())

	var steered []types.Direction
	steer := func(d types.Direction) bool {
		steered = append(steered, d)
		return true
	}

	first := snapshot(types.Classic, types.Right, []types.Point{{X: 18, Y: 5}}, types.Point{X: 0, Y: 0})
	a.Observe(first, steer)
	require.Len(t, steered, 1)
	assert.Equal(t, types.Right, steered[0])

	dead := snapshot(types.Classic, types.Right, []types.Point{{X: 19, Y: 5}}, types.Point{X: 0, Y: 0})
	dead.State = types.GameOver
	dead.Terminal = true
	a.Observe(dead, steer)

	assert.Len(t, steered, 1, "no steering after the session ends")
	assert.InDelta(t, 0.1*RewardDeath, q.QTable[Observe(first).Key()][Forward], 1e-9)
	assert.Equal(t, 1, q.Episodes)
}

func TestAutopilotRewardsFood(t *testing.T) {
	q := newTable()
	a := NewAutopilot(q, true)
	a.SetEnabled(true)
	steer := func(types.Direction) bool { return true }

	first := snapshot(types.Classic, types.Right, []types.Point{{X: 5, Y: 5}}, types.Point{X: 6, Y: 5})
	a.Observe(first, steer)

	ate := snapshot(types.Classic, types.Right, []types.Point{{X: 6, Y: 5}, {X: 5, Y: 5}}, types.Point{X: 0, Y: 0})
	ate.Score = 1
	a.Observe(ate, steer)

	assert.Greater(t, q.QTable[Observe(first).Key()][Forward], 0.0)
}

func TestTrainPlaysEpisodes(t *testing.T) {
	a := NewDefaultAutopilot(5)
	settings := types.Settings{WallMode: types.Classic, Level: 3, ObstaclesEnabled: true}

	stats, err := Train(context.Background(), a, types.Grid{Width: 10, Height: 10}, settings, 20, 9)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Episodes)
	assert.Positive(t, stats.States)
	assert.GreaterOrEqual(t, float64(stats.BestScore), stats.AvgScore)
	assert.False(t, a.Enabled())
	assert.LessOrEqual(t, a.QLearning().Episodes, 20)
}

func TestTrainStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := Train(ctx, NewDefaultAutopilot(1), grid20, types.DefaultSettings(), 10, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Episodes)
}
