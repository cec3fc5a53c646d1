package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"

	"swipe-snake/ai"
	"swipe-snake/audio"
	"swipe-snake/game"
	"swipe-snake/game/manager"
	"swipe-snake/game/scheduler"
	"swipe-snake/game/types"
	"swipe-snake/input"
	"swipe-snake/logging"
	"swipe-snake/store"
	"swipe-snake/term"
	"swipe-snake/ui"
)

func init() {
	// raylib must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	dataDir   string
	logFile   string
	width     int
	height    int
	cell      int
	seed      uint64
	useTerm   bool
	autopilot bool
	mute      bool
	train     int
}

func main() {
	var opts options
	flag.StringVar(&opts.dataDir, "data", "data", "directory for settings, scores, q-table and logs")
	flag.StringVar(&opts.logFile, "log", "", "log file (default <data>/snake.log)")
	flag.IntVar(&opts.width, "width", types.DefaultGridSize, "grid width in cells")
	flag.IntVar(&opts.height, "height", types.DefaultGridSize, "grid height in cells")
	flag.IntVar(&opts.cell, "cell", 30, "cell size in pixels for the window")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.BoolVar(&opts.useTerm, "term", false, "play in the terminal instead of a window")
	flag.BoolVar(&opts.autopilot, "autopilot", false, "let the Q-learning autopilot steer from the start")
	flag.BoolVar(&opts.mute, "mute", false, "disable sound")
	flag.IntVar(&opts.train, "train", 0, "train the autopilot headlessly for N episodes and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintln(os.Stderr, "swipe-snake:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if err := os.MkdirAll(opts.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if opts.logFile == "" {
		opts.logFile = filepath.Join(opts.dataDir, "snake.log")
	}
	if err := logging.Init(opts.logFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()
	log := logging.Named("main")

	if opts.seed == 0 {
		opts.seed = uint64(time.Now().UnixNano())
	}
	grid := types.Grid{Width: opts.width, Height: opts.height}

	var st store.Store
	fileStore, err := store.OpenFileStore(filepath.Join(opts.dataDir, "settings.json"))
	if err != nil {
		// Keep the unreadable file untouched and play with defaults.
		log.Warnw("settings unreadable, using defaults", "error", err)
		st = store.NewMemoryStore()
	} else {
		log.Infow("settings loaded", "path", fileStore.Path(), "keys", len(fileStore.Keys()))
		st = fileStore
	}

	stateMgr, err := manager.NewStateManager(st)
	if err != nil {
		log.Warnw("stats unreadable, starting fresh", "error", err)
	}
	settings := stateMgr.LoadSettings()

	qtablePath := filepath.Join(opts.dataDir, "qtable.json")
	q := ai.NewQLearning(rand.New(rand.NewSource(opts.seed)))
	if err := q.Load(qtablePath); err != nil {
		log.Warnw("q-table unreadable, starting empty", "error", err)
	}
	auto := ai.NewAutopilot(q, true)
	defer func() {
		if err := q.Save(qtablePath); err != nil {
			log.Errorw("failed to save q-table", "path", qtablePath, "error", err)
		}
	}()

	if opts.train > 0 {
		stats, err := ai.Train(ctx, auto, grid, settings, opts.train, opts.seed)
		fmt.Printf("episodes=%d best=%d avg=%.2f states=%d\n",
			stats.Episodes, stats.BestScore, stats.AvgScore, stats.States)
		return err
	}

	g := game.NewGame(grid, stateMgr,
		game.WithSeed(opts.seed),
		game.WithSettings(settings),
		game.WithLogger(logging.Named("engine")))

	sound := audio.NewSoundManager(opts.mute)
	if err := sound.Initialize(); err != nil {
		log.Warnw("audio unavailable", "error", err)
	}
	defer sound.Cleanup()

	var sched *scheduler.Scheduler
	sched = scheduler.New(g, scheduler.Hooks{
		OnSnapshot:  func(snap game.Snapshot) { auto.Observe(snap, sched.SetDirection) },
		OnFoodEaten: sound.OnFoodEaten,
		OnGameOver:  sound.OnGameOver,
	})
	auto.SetEnabled(opts.autopilot)
	ctrl := input.NewController(sched, settings, stateMgr, auto)

	log.Infow("starting",
		"grid", grid,
		"seed", opts.seed,
		"frontend", frontendName(opts.useTerm),
		"high_score", stateMgr.GetHighScore())

	if opts.useTerm {
		err = runTerminal(ctx, sched, ctrl, stateMgr, auto)
	} else {
		err = ui.Run(ctx, windowConfig(grid, opts.cell), sched, ctrl, stateMgr, auto)
	}

	m := g.Metrics()
	log.Infow("exiting",
		"sessions", m.Sessions,
		"ticks", m.TickCount,
		"food_eaten", m.FoodEaten,
		"food_expired", m.FoodExpired,
		"avg_tick_ms", m.AvgTickMs)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func runTerminal(ctx context.Context, sched *scheduler.Scheduler, ctrl *input.Controller, stateMgr *manager.StateManager, auto *ai.Autopilot) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	return term.Run(ctx, screen, sched, ctrl, stateMgr, auto)
}

func windowConfig(grid types.Grid, cell int) ui.Config {
	gameWidth := int32(grid.Width*cell + 20)
	gameHeight := int32(grid.Height*cell + 20)
	return ui.Config{
		Width:  gameWidth + max(gameWidth/3, 200),
		Height: gameHeight,
		Title:  "Swipe Snake",
		FPS:    60,
	}
}

func frontendName(useTerm bool) string {
	if useTerm {
		return "terminal"
	}
	return "window"
}
