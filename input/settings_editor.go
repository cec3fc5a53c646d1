package input

import "swipe-snake/game/types"

// SettingsEditor holds edits to the settings until they are saved. Dirty
// reports unsaved changes.
type SettingsEditor struct {
	saved   types.Settings
	pending types.Settings
}

func NewSettingsEditor(current types.Settings) *SettingsEditor {
	current = current.Normalize()
	return &SettingsEditor{saved: current, pending: current}
}

// Apply edits the pending settings and reports whether cmd was a settings edit.
func (e *SettingsEditor) Apply(cmd Command) bool {
	switch cmd.Kind {
	case ToggleWall:
		e.pending.WallMode = e.pending.WallMode.Toggle()
	case SetLevel:
		e.pending.Level = cmd.Level
		e.pending = e.pending.Normalize()
	case ToggleObstacles:
		e.pending.ObstaclesEnabled = !e.pending.ObstaclesEnabled
	case CycleFoodExpiry:
		e.pending.FoodExpiry = types.NextFoodExpiry(e.pending.FoodExpiry)
	default:
		return false
	}
	return true
}

func (e *SettingsEditor) Pending() types.Settings {
	return e.pending
}

func (e *SettingsEditor) Saved() types.Settings {
	return e.saved
}

func (e *SettingsEditor) Dirty() bool {
	return e.pending != e.saved
}

// Commit marks the pending settings as saved and returns them.
func (e *SettingsEditor) Commit() types.Settings {
	e.saved = e.pending
	return e.saved
}

// Discard drops unsaved edits.
func (e *SettingsEditor) Discard() {
	e.pending = e.saved
}
