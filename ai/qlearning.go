package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/rand"
)

// Action is relative to the current heading, so the agent can never choose
// a reversal.
type Action int

const (
	TurnLeft Action = iota
	Forward
	TurnRight
)

const numActions = 3

func (a Action) String() string {
	switch a {
	case TurnLeft:
		return "left"
	case Forward:
		return "forward"
	case TurnRight:
		return "right"
	}
	return "unknown"
}

// QTable maps a state key to one value per Action.
type QTable map[string][]float64

type QLearning struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	MinEpsilon   float64
	EpsilonDecay float64
	Episodes     int

	mu  sync.RWMutex
	rng *rand.Rand
}

func NewQLearning(rng *rand.Rand) *QLearning {
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.2,
		MinEpsilon:   0.01,
		EpsilonDecay: 0.995,
		rng:          rng,
	}
}

func (q *QLearning) values(key string) []float64 {
	v, ok := q.QTable[key]
	if !ok {
		v = make([]float64, numActions)
		q.QTable[key] = v
	}
	return v
}

// GetAction picks an action epsilon-greedily.
func (q *QLearning) GetAction(s State) Action {
	if q.rng.Float64() < q.Epsilon {
		return Action(q.rng.Intn(numActions))
	}
	return q.BestAction(s)
}

// BestAction returns the highest valued action; ties go to Forward, then
// the lower action.
func (q *QLearning) BestAction(s State) Action {
	q.mu.RLock()
	v, ok := q.QTable[s.Key()]
	q.mu.RUnlock()
	if !ok {
		return Forward
	}

	best := Forward
	bestValue := v[Forward]
	for a := TurnLeft; a <= TurnRight; a++ {
		if v[a] > bestValue {
			best, bestValue = a, v[a]
		}
	}
	return best
}

// Update applies one Q-learning step. A terminal transition has no future value.
func (q *QLearning) Update(s State, a Action, reward float64, next State, terminal bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	current := q.values(s.Key())
	maxNext := 0.0
	if !terminal {
		maxNext = math.Inf(-1)
		for _, v := range q.values(next.Key()) {
			maxNext = math.Max(maxNext, v)
		}
	}
	current[a] += q.LearningRate * (reward + q.Discount*maxNext - current[a])
}

// EndEpisode decays exploration.
func (q *QLearning) EndEpisode() {
	q.Episodes++
	q.Epsilon = math.Max(q.MinEpsilon, q.Epsilon*q.EpsilonDecay)
}

func (q *QLearning) States() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.QTable)
}

type savedTable struct {
	Episodes int     `json:"episodes"`
	Epsilon  float64 `json:"epsilon"`
	Table    QTable  `json:"table"`
}

// Save writes the table to path, merging any values already stored there.
func (q *QLearning) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var existing savedTable
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &existing); err == nil {
			q.merge(existing.Table)
		}
	}

	q.mu.RLock()
	data, err := json.MarshalIndent(savedTable{
		Episodes: q.Episodes,
		Epsilon:  q.Epsilon,
		Table:    q.QTable,
	}, "", "  ")
	q.mu.RUnlock()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load replaces the table with the one at path. A missing file is not an error.
func (q *QLearning) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var saved savedTable
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("parse q-table %s: %w", path, err)
	}
	for key, v := range saved.Table {
		if len(v) != numActions {
			return fmt.Errorf("q-table %s: state %q has %d actions", path, key, len(v))
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if saved.Table != nil {
		q.QTable = saved.Table
	}
	q.Episodes = saved.Episodes
	if saved.Epsilon > 0 {
		q.Epsilon = saved.Epsilon
	}
	return nil
}

// merge averages other into the table; states only other knows are copied.
func (q *QLearning) merge(other QTable) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for key, values := range other {
		if len(values) != numActions {
			continue
		}
		current, ok := q.QTable[key]
		if !ok {
			q.QTable[key] = append([]float64(nil), values...)
			continue
		}
		for a, v := range values {
			current[a] = (current[a] + v) / 2
		}
	}
}
