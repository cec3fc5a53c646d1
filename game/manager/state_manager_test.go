package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipe-snake/game/types"
	"swipe-snake/store"
)

func TestRecordGameHighScoreMonotone(t *testing.T) {
	st := store.NewMemoryStore()
	sm, err := NewStateManager(st)
	require.NoError(t, err)

	newHigh, err := sm.RecordGame(GameRecord{Score: 7})
	require.NoError(t, err)
	assert.True(t, newHigh)
	assert.Equal(t, 7, sm.GetHighScore())

	newHigh, err = sm.RecordGame(GameRecord{Score: 3})
	require.NoError(t, err)
	assert.False(t, newHigh)
	assert.Equal(t, 7, sm.GetHighScore())

	newHigh, err = sm.RecordGame(GameRecord{Score: 7})
	require.NoError(t, err)
	assert.False(t, newHigh, "equal score is not a new high score")

	reloaded, err := NewStateManager(st)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.GetHighScore())
	assert.Len(t, reloaded.GetScoreHistory(), 3)
}

func TestScoreHistoryBounded(t *testing.T) {
	sm, err := NewStateManager(store.NewMemoryStore())
	require.NoError(t, err)

	for i := 0; i < types.MaxScoreHistory+5; i++ {
		_, err := sm.RecordGame(GameRecord{Score: i})
		require.NoError(t, err)
	}
	history := sm.GetScoreHistory()
	require.Len(t, history, types.MaxScoreHistory)
	assert.Equal(t, 5, history[0].Score)
	assert.Equal(t, types.MaxScoreHistory+4, history[len(history)-1].Score)
}

func TestLoadStatsRejectsBadHighScore(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(KeyHighScore, "lots"))

	sm, err := NewStateManager(st)
	assert.Error(t, err)
	assert.Zero(t, sm.GetHighScore())
}

func TestSettingsRoundTrip(t *testing.T) {
	sm, err := NewStateManager(store.NewMemoryStore())
	require.NoError(t, err)

	assert.Equal(t, types.DefaultSettings(), sm.LoadSettings())

	want := types.Settings{
		WallMode:         types.Teleport,
		Level:            5,
		ObstaclesEnabled: false,
		FoodExpiry:       0,
	}
	require.NoError(t, sm.SaveSettings(want))
	assert.Equal(t, want, sm.LoadSettings())

	want.FoodExpiry = 15 * time.Second
	require.NoError(t, sm.SaveSettings(want))
	assert.Equal(t, want, sm.LoadSettings())
}

func TestLoadSettingsClampsStoredValues(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(KeyLevel, "12"))
	require.NoError(t, st.Set(KeyWallMode, "spiral"))
	require.NoError(t, st.Set(KeyFoodExpiryMs, "500"))
	require.NoError(t, st.Set(KeyObstaclesEnabled, "false"))

	sm, err := NewStateManager(st)
	require.NoError(t, err)
	s := sm.LoadSettings()
	assert.Equal(t, types.MaxLevel, s.Level)
	assert.Equal(t, types.Classic, s.WallMode)
	assert.Equal(t, types.MinFoodExpiry, s.FoodExpiry)
	assert.False(t, s.ObstaclesEnabled)
}
