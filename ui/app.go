// Package ui is the raylib window frontend.
package ui

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"swipe-snake/game/manager"
	"swipe-snake/game/scheduler"
	"swipe-snake/input"
	"swipe-snake/ui/hud"
)

type Config struct {
	Width  int32
	Height int32
	Title  string
	FPS    int32
}

// Indicator reports an on/off switch for the HUD.
type Indicator interface {
	Enabled() bool
}

// Run opens the window and polls input, timers and drawing once per frame
// until the window closes, the player quits or ctx is done.
func Run(ctx context.Context, cfg Config, sched *scheduler.Scheduler, ctrl *input.Controller, stats *manager.StateManager, auto Indicator) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(cfg.FPS)

	renderer := NewRenderer()
	var reader InputReader

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := time.Now()
		for _, cmd := range reader.Poll() {
			if ctrl.Handle(cmd, now) {
				return nil
			}
		}
		snap := sched.Update(now)

		view := hud.View{
			Pending: ctrl.Editor().Pending(),
			Dirty:   ctrl.Editor().Dirty(),
			History: stats.GetScoreHistory(),
		}
		if auto != nil {
			view.Autopilot = auto.Enabled()
		}
		renderer.Draw(snap, view)
	}
	return nil
}
