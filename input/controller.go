package input

import (
	"time"

	"go.uber.org/zap"

	"swipe-snake/game/scheduler"
	"swipe-snake/game/types"
	"swipe-snake/logging"
)

// SettingsSaver persists settings; *manager.StateManager satisfies it.
type SettingsSaver interface {
	SaveSettings(s types.Settings) error
}

// Switch is something the player can turn on and off, such as the autopilot.
type Switch interface {
	Toggle() bool
}

// Controller applies commands to a scheduler. It is not safe for concurrent
// use; event-driven hosts call it from their runner goroutine.
type Controller struct {
	sched     *scheduler.Scheduler
	editor    *SettingsEditor
	saver     SettingsSaver
	autopilot Switch
	log       *zap.SugaredLogger
}

// NewController builds a controller. saver and autopilot may be nil.
func NewController(sched *scheduler.Scheduler, current types.Settings, saver SettingsSaver, autopilot Switch) *Controller {
	return &Controller{
		sched:     sched,
		editor:    NewSettingsEditor(current),
		saver:     saver,
		autopilot: autopilot,
		log:       logging.Named("input"),
	}
}

// Handle applies cmd and reports whether the player asked to quit.
func (c *Controller) Handle(cmd Command, now time.Time) bool {
	switch {
	case cmd.Kind == Turn:
		c.sched.SetDirection(cmd.Dir)
	case cmd.Kind == StartRestart:
		c.sched.StartOrRestart(now)
	case cmd.Kind == PauseResume:
		c.sched.TogglePause(now)
	case cmd.IsSettings():
		c.editor.Apply(cmd)
		c.log.Debugw("settings edited", "pending", c.editor.Pending(), "dirty", c.editor.Dirty())
	case cmd.Kind == SaveSettings:
		c.save()
	case cmd.Kind == ToggleAutopilot:
		if c.autopilot != nil {
			on := c.autopilot.Toggle()
			c.log.Infow("autopilot toggled", "enabled", on)
		}
	case cmd.Kind == Quit:
		return true
	}
	return false
}

// save clears the board, applies the pending settings and persists them.
func (c *Controller) save() {
	if !c.editor.Dirty() {
		return
	}
	settings := c.editor.Commit()
	c.sched.Reset()
	c.sched.Configure(settings)
	if c.saver == nil {
		return
	}
	if err := c.saver.SaveSettings(settings); err != nil {
		c.log.Errorw("failed to save settings", "error", err)
	}
}

func (c *Controller) Editor() *SettingsEditor {
	return c.editor
}
