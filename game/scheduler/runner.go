package scheduler

import (
	"context"
	"time"
)

// idleWait is how long the runner sleeps when no timer is armed.
const idleWait = time.Hour

// Command is work executed on the runner goroutine.
type Command func(s *Scheduler, now time.Time)

// Runner drives a Scheduler from a single goroutine so that input handlers on
// other goroutines never touch the engine directly.
type Runner struct {
	sched    *Scheduler
	commands chan Command
	now      func() time.Time
}

func NewRunner(sched *Scheduler, buffer int) *Runner {
	if buffer < 1 {
		buffer = 1
	}
	return &Runner{
		sched:    sched,
		commands: make(chan Command, buffer),
		now:      time.Now,
	}
}

// Run fires timers and executes commands until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	timer := time.NewTimer(idleWait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-r.commands:
			cmd(r.sched, r.now())
			r.sched.Update(r.now())
		case <-timer.C:
			r.sched.Update(r.now())
		}
		resetTimer(timer, r.wait())
	}
}

func (r *Runner) wait() time.Duration {
	deadline, ok := r.sched.NextDeadline()
	if !ok {
		return idleWait
	}
	d := deadline.Sub(r.now())
	if d < 0 {
		d = 0
	}
	return d
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// Submit queues cmd, blocking until there is room or ctx is done.
func (r *Runner) Submit(ctx context.Context, cmd Command) error {
	select {
	case r.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues cmd without blocking and reports whether it was accepted.
// Direction changes use this: a dropped intent is harmless.
func (r *Runner) TrySubmit(cmd Command) bool {
	select {
	case r.commands <- cmd:
		return true
	default:
		return false
	}
}
