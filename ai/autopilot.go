// Package ai steers the snake with a tabular Q-learning agent. It only ever
// talks to the engine through direction intents, like a human player.
package ai

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"swipe-snake/game"
	"swipe-snake/game/types"
	"swipe-snake/logging"
)

// Rewards
const (
	RewardFood    = 1.0
	RewardDeath   = -1.0
	RewardCloser  = 0.1
	RewardFarther = -0.1
)

// Steer submits a direction intent; scheduler.Scheduler.SetDirection fits.
type Steer func(types.Direction) bool

type step struct {
	session  string
	state    State
	action   Action
	score    int
	distance int
}

type Autopilot struct {
	q       *QLearning
	learn   bool
	enabled bool
	prev    *step
	mu      sync.Mutex
	log     *zap.SugaredLogger
}

// NewAutopilot wraps q. With learn unset the table is only read.
func NewAutopilot(q *QLearning, learn bool) *Autopilot {
	return &Autopilot{
		q:     q,
		learn: learn,
		log:   logging.Named("autopilot"),
	}
}

// NewDefaultAutopilot builds a learning autopilot over an empty table.
func NewDefaultAutopilot(seed uint64) *Autopilot {
	return NewAutopilot(NewQLearning(rand.New(rand.NewSource(seed))), true)
}

func (a *Autopilot) Toggle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = !a.enabled
	a.prev = nil
	return a.enabled
}

func (a *Autopilot) SetEnabled(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = on
	a.prev = nil
}

func (a *Autopilot) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

func (a *Autopilot) QLearning() *QLearning {
	return a.q
}

// Observe learns from the transition that produced snap and, while the
// session is running, picks the next heading.
func (a *Autopilot) Observe(snap game.Snapshot, steer Steer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return
	}

	if a.prev != nil && a.prev.session != snap.SessionID {
		a.prev = nil
	}

	state := Observe(snap)
	distance := Distance(snap)

	if a.prev != nil && a.learn {
		reward := a.reward(snap, distance)
		a.q.Update(a.prev.state, a.prev.action, reward, state, snap.Terminal)
	}

	if snap.Terminal || snap.State != types.Running {
		if snap.Terminal {
			a.q.EndEpisode()
			a.log.Debugw("episode finished",
				"session", snap.SessionID,
				"score", snap.Score,
				"cause", snap.Cause,
				"epsilon", a.q.Epsilon,
				"states", a.q.States())
		}
		a.prev = nil
		return
	}

	action := a.q.BestAction(state)
	if a.learn {
		action = a.q.GetAction(state)
	}
	steer(Heading(snap.Direction, action))

	a.prev = &step{
		session:  snap.SessionID,
		state:    state,
		action:   action,
		score:    snap.Score,
		distance: distance,
	}
}

func (a *Autopilot) reward(snap game.Snapshot, distance int) float64 {
	switch {
	case snap.Terminal:
		return RewardDeath
	case snap.Score > a.prev.score:
		return RewardFood
	case distance < a.prev.distance:
		return RewardCloser
	case distance > a.prev.distance:
		return RewardFarther
	}
	return 0
}
