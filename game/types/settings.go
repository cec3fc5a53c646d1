package types

import "time"

// Tick pacing and level bounds
const (
	BaseInterval = 120 * time.Millisecond
	LevelStep    = 20 * time.Millisecond
	MinInterval  = 20 * time.Millisecond

	MinLevel     = 1
	MaxLevel     = 5
	DefaultLevel = 3

	DefaultFoodExpiry = 8 * time.Second
	MinFoodExpiry     = 2 * time.Second
	MaxFoodExpiry     = 20 * time.Second
)

// FoodExpiryChoices are the values a settings editor cycles through; 0 means never.
var FoodExpiryChoices = []time.Duration{
	5 * time.Second,
	8 * time.Second,
	10 * time.Second,
	15 * time.Second,
	0,
}

// Settings is the persisted game configuration. It only changes between sessions.
type Settings struct {
	WallMode         WallMode
	Level            int
	ObstaclesEnabled bool
	// FoodExpiry is how long food stays before it moves; zero disables expiry.
	FoodExpiry time.Duration
}

// DefaultSettings mirrors what a first-time player gets.
func DefaultSettings() Settings {
	return Settings{
		WallMode:         Classic,
		Level:            DefaultLevel,
		ObstaclesEnabled: true,
		FoodExpiry:       DefaultFoodExpiry,
	}
}

// Normalize clamps every field into its legal range.
func (s Settings) Normalize() Settings {
	if s.WallMode != Classic && s.WallMode != Teleport {
		s.WallMode = Classic
	}
	if s.Level < MinLevel {
		s.Level = MinLevel
	}
	if s.Level > MaxLevel {
		s.Level = MaxLevel
	}
	switch {
	case s.FoodExpiry <= 0:
		s.FoodExpiry = 0
	case s.FoodExpiry < MinFoodExpiry:
		s.FoodExpiry = MinFoodExpiry
	case s.FoodExpiry > MaxFoodExpiry:
		s.FoodExpiry = MaxFoodExpiry
	}
	return s
}

// TickInterval derives the tick period from the level:
// BaseInterval - (level-1)*LevelStep, never below MinInterval.
func (s Settings) TickInterval() time.Duration {
	interval := BaseInterval - time.Duration(s.Level-1)*LevelStep
	if interval < MinInterval {
		return MinInterval
	}
	return interval
}

// FoodExpires reports whether food relocates on its own.
func (s Settings) FoodExpires() bool {
	return s.FoodExpiry > 0
}

// NextFoodExpiry returns the choice following the current one in FoodExpiryChoices.
func NextFoodExpiry(current time.Duration) time.Duration {
	for i, d := range FoodExpiryChoices {
		if d == current {
			return FoodExpiryChoices[(i+1)%len(FoodExpiryChoices)]
		}
	}
	return FoodExpiryChoices[0]
}
