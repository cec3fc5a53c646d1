package term

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"swipe-snake/game/manager"
	"swipe-snake/game/scheduler"
	"swipe-snake/input"
	"swipe-snake/logging"
	"swipe-snake/ui/hud"
)

const frameInterval = 33 * time.Millisecond

// Indicator reports an on/off switch for the HUD.
type Indicator interface {
	Enabled() bool
}

// Translate maps a key event to a command.
func Translate(ev *tcell.EventKey) input.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.FromName("up")
	case tcell.KeyDown:
		return input.FromName("down")
	case tcell.KeyLeft:
		return input.FromName("left")
	case tcell.KeyRight:
		return input.FromName("right")
	case tcell.KeyEnter:
		return input.FromName("enter")
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.Command{Kind: input.Quit}
	case tcell.KeyRune:
		return input.FromRune(ev.Rune())
	}
	return input.Command{}
}

// Run drives the game on screen until the player quits or ctx is done. The
// caller owns the screen and finalizes it afterwards.
func Run(ctx context.Context, screen tcell.Screen, sched *scheduler.Scheduler, ctrl *input.Controller, stats *manager.StateManager, auto Indicator) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logging.Named("term")
	runner := scheduler.NewRunner(sched, 64)
	renderer := NewRenderer(screen)

	draw := func(s *scheduler.Scheduler, _ time.Time) {
		view := hud.View{
			Pending: ctrl.Editor().Pending(),
			Dirty:   ctrl.Editor().Dirty(),
			History: stats.GetScoreHistory(),
		}
		if auto != nil {
			view.Autopilot = auto.Enabled()
		}
		renderer.Draw(s.Last(), view)
	}

	go pollEvents(ctx, screen, runner, ctrl, cancel, log)

	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runner.TrySubmit(draw)
			}
		}
	}()

	err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func pollEvents(ctx context.Context, screen tcell.Screen, runner *scheduler.Runner, ctrl *input.Controller, quit context.CancelFunc, log *zap.SugaredLogger) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			runner.TrySubmit(func(*scheduler.Scheduler, time.Time) { screen.Sync() })
		case *tcell.EventError:
			log.Errorw("terminal error", "error", ev)
			quit()
			return
		case *tcell.EventKey:
			cmd := Translate(ev)
			if cmd.Kind == input.None {
				continue
			}
			err := runner.Submit(ctx, func(_ *scheduler.Scheduler, now time.Time) {
				if ctrl.Handle(cmd, now) {
					quit()
				}
			})
			if err != nil {
				return
			}
		}
	}
}
