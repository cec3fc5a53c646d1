package manager

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"swipe-snake/game/types"
	"swipe-snake/store"
)

// Keys used in the settings blob
const (
	KeyWallMode         = "wallMode"
	KeyLevel            = "level"
	KeyObstaclesEnabled = "obstaclesEnabled"
	KeyFoodExpiryMs     = "foodExpiryMs"
	KeyHighScore        = "highScore"
	KeyScoreHistory     = "scoreHistory"
)

// GameRecord describes one finished session.
type GameRecord struct {
	SessionID string    `json:"sessionId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	Cause     string    `json:"cause"`
}

type StateManager struct {
	store        store.Store
	highScore    int
	scoreHistory []GameRecord
}

// NewStateManager loads the high score and history from st. Malformed values
// are reported but leave the manager usable with zeroed stats.
func NewStateManager(st store.Store) (*StateManager, error) {
	sm := &StateManager{
		store:        st,
		scoreHistory: make([]GameRecord, 0),
	}
	return sm, sm.LoadStats()
}

func (sm *StateManager) LoadStats() error {
	if v, ok := sm.store.Get(KeyHighScore); ok {
		hs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", KeyHighScore, err)
		}
		if hs > 0 {
			sm.highScore = hs
		}
	}

	if v, ok := sm.store.Get(KeyScoreHistory); ok && v != "" {
		var history []GameRecord
		if err := json.Unmarshal([]byte(v), &history); err != nil {
			return fmt.Errorf("parse %s: %w", KeyScoreHistory, err)
		}
		sm.scoreHistory = history
	}
	return nil
}

func (sm *StateManager) SaveStats() error {
	if err := sm.store.Set(KeyHighScore, strconv.Itoa(sm.highScore)); err != nil {
		return err
	}
	data, err := json.Marshal(sm.scoreHistory)
	if err != nil {
		return err
	}
	return sm.store.Set(KeyScoreHistory, string(data))
}

// RecordGame appends rec to the bounded history and raises the high score if
// rec beats it. It reports whether the high score changed.
func (sm *StateManager) RecordGame(rec GameRecord) (bool, error) {
	if len(sm.scoreHistory) >= types.MaxScoreHistory {
		sm.scoreHistory = sm.scoreHistory[len(sm.scoreHistory)-types.MaxScoreHistory+1:]
	}
	sm.scoreHistory = append(sm.scoreHistory, rec)

	newHigh := rec.Score > sm.highScore
	if newHigh {
		sm.highScore = rec.Score
	}
	return newHigh, sm.SaveStats()
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// GetScoreHistory returns a copy of the recorded games, oldest first.
func (sm *StateManager) GetScoreHistory() []GameRecord {
	history := make([]GameRecord, len(sm.scoreHistory))
	copy(history, sm.scoreHistory)
	return history
}

// LoadSettings reads the persisted settings, falling back to defaults for
// missing or unreadable keys, and clamps the result.
func (sm *StateManager) LoadSettings() types.Settings {
	s := types.DefaultSettings()

	if v, ok := sm.store.Get(KeyWallMode); ok {
		if mode, err := types.ParseWallMode(v); err == nil {
			s.WallMode = mode
		}
	}
	if v, ok := sm.store.Get(KeyLevel); ok {
		if level, err := strconv.Atoi(v); err == nil {
			s.Level = level
		}
	}
	if v, ok := sm.store.Get(KeyObstaclesEnabled); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			s.ObstaclesEnabled = enabled
		}
	}
	if v, ok := sm.store.Get(KeyFoodExpiryMs); ok {
		if v == "null" || v == "none" {
			s.FoodExpiry = 0
		} else if ms, err := strconv.Atoi(v); err == nil {
			s.FoodExpiry = time.Duration(ms) * time.Millisecond
		}
	}
	return s.Normalize()
}

func (sm *StateManager) SaveSettings(s types.Settings) error {
	s = s.Normalize()
	expiry := "null"
	if s.FoodExpires() {
		expiry = strconv.FormatInt(s.FoodExpiry.Milliseconds(), 10)
	}

	values := [][2]string{
		{KeyWallMode, s.WallMode.String()},
		{KeyLevel, strconv.Itoa(s.Level)},
		{KeyObstaclesEnabled, strconv.FormatBool(s.ObstaclesEnabled)},
		{KeyFoodExpiryMs, expiry},
	}
	for _, kv := range values {
		if err := sm.store.Set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}
	return nil
}
