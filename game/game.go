package game

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"swipe-snake/game/entity"
	"swipe-snake/game/manager"
	"swipe-snake/game/types"
	"swipe-snake/logging"
	"swipe-snake/store"
)

// Game owns one board and advances it one step per Tick. It has no timers of
// its own and is not safe for concurrent use: the host serializes every call.
type Game struct {
	UUID      string
	Grid      types.Grid
	StartTime time.Time

	settings  types.Settings
	state     types.State
	snake     *entity.Snake
	food      types.Point
	hasFood   bool
	obstacles []types.Point
	score     int
	cause     types.CollisionType

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	obstacleMgr  *manager.ObstacleManager
	stateMgr     *manager.StateManager

	metrics *GameMetrics
	log     *zap.SugaredLogger
	now     func() time.Time
}

type Option func(*Game)

// WithSeed makes food and obstacle placement reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		rng := rand.New(rand.NewSource(seed))
		g.foodMgr = manager.NewFoodManager(g.Grid, g.collisionMgr, rng)
		g.obstacleMgr = manager.NewObstacleManager(g.Grid, g.collisionMgr, rng)
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(g *Game) { g.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func WithSettings(s types.Settings) Option {
	return func(g *Game) { g.settings = s.Normalize() }
}

// NewGame builds an engine in the NotStarted state. A nil stateMgr keeps the
// high score in memory only.
func NewGame(grid types.Grid, stateMgr *manager.StateManager, opts ...Option) *Game {
	if grid.Width <= 0 || grid.Height <= 0 {
		grid = types.Grid{Width: types.DefaultGridSize, Height: types.DefaultGridSize}
	}
	if stateMgr == nil {
		// A fresh memory store has nothing to parse, so this cannot fail.
		stateMgr, _ = manager.NewStateManager(store.NewMemoryStore())
	}

	collisionMgr := manager.NewCollisionManager(grid)
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

	g := &Game{
		Grid:         grid,
		settings:     types.DefaultSettings(),
		state:        types.NotStarted,
		snake:        entity.NewSnake(startPosition(grid), types.Right),
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, collisionMgr, rng),
		obstacleMgr:  manager.NewObstacleManager(grid, collisionMgr, rng),
		stateMgr:     stateMgr,
		metrics:      &GameMetrics{},
		log:          logging.Named("engine"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func startPosition(grid types.Grid) types.Point {
	start := types.Point{X: types.StartX, Y: types.StartY}
	if !grid.Contains(start) {
		start = types.Point{X: grid.Width / 2, Y: grid.Height / 2}
	}
	return start
}

// Configure replaces the settings. It is a no-op while a session is running or
// paused; out-of-range values are clamped.
func (g *Game) Configure(s types.Settings) bool {
	if !g.state.Idle() {
		g.reject("configure")
		return false
	}
	g.settings = s.Normalize()
	g.log.Infow("settings applied",
		"wall_mode", g.settings.WallMode,
		"level", g.settings.Level,
		"obstacles", g.settings.ObstaclesEnabled,
		"food_expiry", g.settings.FoodExpiry,
		"interval", g.settings.TickInterval())
	return true
}

// Start begins a session from NotStarted or GameOver and returns the tick
// interval the host must schedule.
func (g *Game) Start() (time.Duration, bool) {
	if !g.state.Idle() {
		g.reject("start")
		return 0, false
	}
	g.reset()
	return g.settings.TickInterval(), true
}

// Restart begins a fresh session from any state.
func (g *Game) Restart() time.Duration {
	g.reset()
	return g.settings.TickInterval()
}

// Reset abandons any session and clears the board back to NotStarted without
// recording a result.
func (g *Game) Reset() {
	if g.state == types.Running || g.state == types.Paused {
		g.log.Infow("session abandoned", "session", g.UUID, "score", g.score)
	}
	g.snake = entity.NewSnake(startPosition(g.Grid), types.Right)
	g.score = 0
	g.obstacles = nil
	g.hasFood = false
	g.cause = types.NoCollision
	g.state = types.NotStarted
}

func (g *Game) reset() {
	g.UUID = uuid.New().String()
	g.StartTime = g.now()
	g.snake = entity.NewSnake(startPosition(g.Grid), types.Right)
	g.score = 0
	g.obstacles = nil
	g.cause = types.NoCollision
	g.placeFood()
	g.state = types.Running
	g.metrics.IncSessions()

	g.log.Infow("session started",
		"session", g.UUID,
		"grid", g.Grid,
		"interval", g.settings.TickInterval())
}

// SetDirection buffers an intent for the next tick. Reversals of the active
// direction and calls outside Running are ignored.
func (g *Game) SetDirection(dir types.Direction) bool {
	if g.state != types.Running {
		return false
	}
	return g.snake.SetDirection(dir)
}

func (g *Game) Pause() bool {
	if g.state != types.Running {
		g.reject("pause")
		return false
	}
	g.state = types.Paused
	g.log.Debugw("session paused", "session", g.UUID, "score", g.score)
	return true
}

func (g *Game) Resume() bool {
	if g.state != types.Paused {
		g.reject("resume")
		return false
	}
	g.state = types.Running
	g.log.Debugw("session resumed", "session", g.UUID)
	return true
}

// Tick advances the board one step. Outside Running it returns the current
// snapshot unchanged.
func (g *Game) Tick() Snapshot {
	if g.state != types.Running {
		g.reject("tick")
		return g.Snapshot()
	}

	started := time.Now()
	defer func() { g.metrics.AddTick(time.Since(started)) }()

	var ev Events
	prevDir := g.snake.Direction
	dir := g.snake.CommitDirection()
	ev.DirectionChanged = dir != prevDir

	newHead := g.snake.GetHead().Add(dir.Delta())
	if g.collisionMgr.IsWallCollision(newHead) {
		if g.settings.WallMode != types.Teleport {
			return g.endGame(types.WallCollision, ev)
		}
		newHead = g.collisionMgr.Wrap(newHead)
	}

	ate := g.hasFood && g.collisionMgr.IsFoodCollision(newHead, g.food)
	if !ate {
		g.snake.RemoveTail()
	}
	g.snake.Move(newHead)

	if ate {
		g.score++
		g.metrics.IncFoodEaten()
		ev.FoodEaten = true

		if g.settings.ObstaclesEnabled && manager.ShouldRegenerate(g.score) {
			g.regenerateObstacles(&ev)
		}
		g.placeFood()
		ev.FoodPlaced = true
	}

	if cause := g.collisionMgr.CheckCollision(g.snake, g.activeObstacles()); cause != types.NoCollision {
		return g.endGame(cause, ev)
	}

	snap := g.Snapshot()
	snap.Events = ev
	return snap
}

// OnFoodExpired moves the food without touching score or snake.
func (g *Game) OnFoodExpired() (Snapshot, bool) {
	if g.state != types.Running {
		g.reject("food expiry")
		return g.Snapshot(), false
	}
	g.metrics.IncFoodExpired()
	g.placeFood()
	snap := g.Snapshot()
	snap.Events.FoodPlaced = true
	return snap, true
}

func (g *Game) activeObstacles() []types.Point {
	if !g.settings.ObstaclesEnabled {
		return nil
	}
	return g.obstacles
}

func (g *Game) regenerateObstacles(ev *Events) {
	obstacles, skipped := g.obstacleMgr.Generate(g.score, g.snake, g.food)
	g.obstacles = obstacles
	ev.ObstaclesChanged = true
	ev.ObstaclesSkipped = skipped
	if skipped > 0 {
		g.metrics.AddSkipped(skipped)
		g.log.Warnw("obstacle batch under-filled",
			"session", g.UUID,
			"wanted", manager.BatchSize(g.score),
			"skipped", skipped)
	}
}

func (g *Game) placeFood() {
	food, ok := g.foodMgr.GenerateFood(g.snake, g.activeObstacles())
	g.food, g.hasFood = food, ok
	if !ok {
		g.log.Warnw("no free cell for food", "session", g.UUID, "length", g.snake.Len())
	}
}

func (g *Game) endGame(cause types.CollisionType, ev Events) Snapshot {
	g.state = types.GameOver
	g.cause = cause

	newHigh, err := g.stateMgr.RecordGame(manager.GameRecord{
		SessionID: g.UUID,
		StartTime: g.StartTime,
		EndTime:   g.now(),
		Score:     g.score,
		Cause:     cause.String(),
	})
	if err != nil {
		g.log.Errorw("failed to persist game result", "session", g.UUID, "error", err)
	}
	ev.NewHighScore = newHigh

	g.log.Infow("game over",
		"session", g.UUID,
		"cause", cause,
		"score", g.score,
		"high_score", g.stateMgr.GetHighScore(),
		"new_high", newHigh)

	snap := g.Snapshot()
	snap.Terminal = true
	snap.Events = ev
	return snap
}

func (g *Game) reject(op string) {
	g.metrics.IncRejected()
	g.log.Debugw("call ignored", "op", op, "state", g.state)
}

// Snapshot returns a copy of the current board.
func (g *Game) Snapshot() Snapshot {
	obstacles := make([]types.Point, len(g.obstacles))
	copy(obstacles, g.obstacles)
	return Snapshot{
		SessionID: g.UUID,
		State:     g.state,
		Grid:      g.Grid,
		Snake:     g.snake.Cells(),
		Direction: g.snake.Direction,
		Food:      g.food,
		HasFood:   g.hasFood && g.state != types.NotStarted,
		Obstacles: obstacles,
		Score:     g.score,
		HighScore: g.stateMgr.GetHighScore(),
		Interval:  g.settings.TickInterval(),
		Settings:  g.settings,
		Cause:     g.cause,
	}
}

func (g *Game) State() types.State          { return g.state }
func (g *Game) Score() int                  { return g.score }
func (g *Game) Settings() types.Settings    { return g.settings }
func (g *Game) GetHighScore() int           { return g.stateMgr.GetHighScore() }
func (g *Game) TickInterval() time.Duration { return g.settings.TickInterval() }
func (g *Game) Metrics() MetricsSnapshot    { return g.metrics.Snapshot() }

// GetStateManager exposes persistence for the score-history panel.
func (g *Game) GetStateManager() *manager.StateManager {
	return g.stateMgr
}
