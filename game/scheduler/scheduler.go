// Package scheduler owns the wall-clock side of a game: the tick timer and the
// food-expiry timer. The engine stays a pure state machine; the scheduler
// decides when to call it.
package scheduler

import (
	"time"

	"go.uber.org/zap"

	"swipe-snake/game"
	"swipe-snake/game/types"
	"swipe-snake/logging"
)

// maxCatchUp bounds how many overdue ticks one Update replays after a stall.
const maxCatchUp = 3

// Engine is the part of *game.Game the scheduler drives.
type Engine interface {
	Start() (time.Duration, bool)
	Restart() time.Duration
	Reset()
	Pause() bool
	Resume() bool
	Tick() game.Snapshot
	OnFoodExpired() (game.Snapshot, bool)
	SetDirection(dir types.Direction) bool
	Configure(s types.Settings) bool
	Snapshot() game.Snapshot
	State() types.State
	Settings() types.Settings
}

// Hooks are optional callbacks fired after the engine changes. They run on
// whatever goroutine calls the scheduler.
type Hooks struct {
	OnSnapshot  func(game.Snapshot)
	OnFoodEaten func(game.Snapshot)
	OnGameOver  func(game.Snapshot)
}

type Scheduler struct {
	engine Engine
	hooks  Hooks
	log    *zap.SugaredLogger

	interval time.Duration
	nextTick time.Time
	// foodDeadline is zero while the expiry timer is disarmed.
	foodDeadline  time.Time
	foodRemaining time.Duration

	last game.Snapshot
}

func New(engine Engine, hooks Hooks) *Scheduler {
	return &Scheduler{
		engine: engine,
		hooks:  hooks,
		log:    logging.Named("scheduler"),
		last:   engine.Snapshot(),
	}
}

// Start begins a session if none is running.
func (s *Scheduler) Start(now time.Time) bool {
	interval, ok := s.engine.Start()
	if !ok {
		return false
	}
	s.begin(now, interval)
	return true
}

// Restart throws away the current session and begins a new one.
func (s *Scheduler) Restart(now time.Time) {
	s.begin(now, s.engine.Restart())
}

// StartOrRestart is the single start/restart button.
func (s *Scheduler) StartOrRestart(now time.Time) {
	if s.engine.State().Idle() {
		s.Start(now)
		return
	}
	s.Restart(now)
}

// Reset abandons the session and disarms both timers.
func (s *Scheduler) Reset() {
	s.engine.Reset()
	s.nextTick = time.Time{}
	s.foodDeadline = time.Time{}
	s.foodRemaining = 0
	s.publish(s.engine.Snapshot())
}

func (s *Scheduler) begin(now time.Time, interval time.Duration) {
	s.interval = interval
	s.nextTick = now.Add(interval)
	s.foodRemaining = 0
	s.armFood(now)
	s.log.Debugw("timers armed", "interval", interval, "food_deadline", s.foodDeadline)
	s.publish(s.engine.Snapshot())
}

func (s *Scheduler) Pause(now time.Time) bool {
	if !s.engine.Pause() {
		return false
	}
	s.foodRemaining = 0
	if !s.foodDeadline.IsZero() {
		s.foodRemaining = s.foodDeadline.Sub(now)
		if s.foodRemaining < 0 {
			s.foodRemaining = 0
		}
	}
	s.nextTick = time.Time{}
	s.foodDeadline = time.Time{}
	s.publish(s.engine.Snapshot())
	return true
}

// Resume restarts the tick timer at the same interval and the expiry timer
// with whatever time it had left when paused.
func (s *Scheduler) Resume(now time.Time) bool {
	if !s.engine.Resume() {
		return false
	}
	s.nextTick = now.Add(s.interval)
	if s.engine.Settings().FoodExpires() {
		s.foodDeadline = now.Add(s.foodRemaining)
	}
	s.foodRemaining = 0
	s.publish(s.engine.Snapshot())
	return true
}

func (s *Scheduler) TogglePause(now time.Time) bool {
	switch s.engine.State() {
	case types.Running:
		return s.Pause(now)
	case types.Paused:
		return s.Resume(now)
	}
	return false
}

func (s *Scheduler) SetDirection(dir types.Direction) bool {
	return s.engine.SetDirection(dir)
}

// Configure applies settings between sessions.
func (s *Scheduler) Configure(settings types.Settings) bool {
	if !s.engine.Configure(settings) {
		return false
	}
	s.publish(s.engine.Snapshot())
	return true
}

// Update fires every timer that is due at now, earliest first.
func (s *Scheduler) Update(now time.Time) game.Snapshot {
	ticks := 0
	for s.engine.State() == types.Running {
		tickDue := !s.nextTick.IsZero() && !now.Before(s.nextTick)
		foodDue := !s.foodDeadline.IsZero() && !now.Before(s.foodDeadline)
		if !tickDue && !foodDue {
			break
		}

		if foodDue && (!tickDue || s.foodDeadline.Before(s.nextTick)) {
			at := s.foodDeadline
			s.foodDeadline = time.Time{}
			if snap, ok := s.engine.OnFoodExpired(); ok {
				s.armFood(at)
				s.publish(snap)
			}
			continue
		}

		at := s.nextTick
		ticks++
		if ticks > maxCatchUp {
			s.log.Debugw("dropping overdue ticks", "behind", now.Sub(at))
			s.nextTick = now.Add(s.interval)
			break
		}
		s.nextTick = at.Add(s.interval)
		s.handleTick(at, s.engine.Tick())
	}
	return s.last
}

func (s *Scheduler) handleTick(at time.Time, snap game.Snapshot) {
	if snap.Events.FoodPlaced {
		s.armFood(at)
	}
	if snap.Events.FoodEaten && s.hooks.OnFoodEaten != nil {
		s.hooks.OnFoodEaten(snap)
	}
	if snap.Terminal {
		s.nextTick = time.Time{}
		s.foodDeadline = time.Time{}
		if s.hooks.OnGameOver != nil {
			s.hooks.OnGameOver(snap)
		}
	}
	s.publish(snap)
}

func (s *Scheduler) armFood(now time.Time) {
	settings := s.engine.Settings()
	if !settings.FoodExpires() {
		s.foodDeadline = time.Time{}
		return
	}
	s.foodDeadline = now.Add(settings.FoodExpiry)
}

func (s *Scheduler) publish(snap game.Snapshot) {
	s.last = snap
	if s.hooks.OnSnapshot != nil {
		s.hooks.OnSnapshot(snap)
	}
}

// NextDeadline is the earliest armed timer, if any.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	var next time.Time
	for _, t := range []time.Time{s.nextTick, s.foodDeadline} {
		if t.IsZero() {
			continue
		}
		if next.IsZero() || t.Before(next) {
			next = t
		}
	}
	return next, !next.IsZero()
}

// FoodDeadline reports the armed expiry deadline.
func (s *Scheduler) FoodDeadline() (time.Time, bool) {
	return s.foodDeadline, !s.foodDeadline.IsZero()
}

// Last returns the most recently published snapshot.
func (s *Scheduler) Last() game.Snapshot {
	return s.last
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
