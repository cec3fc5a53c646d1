package ai

import (
	"context"

	"swipe-snake/game"
	"swipe-snake/game/types"
)

// maxStepsPerEpisode ends episodes where the agent circles forever.
const maxStepsPerEpisode = 5000

type TrainingStats struct {
	Episodes  int
	BestScore int
	AvgScore  float64
	States    int
}

// Train plays episodes headlessly as fast as the engine ticks. Results are not
// recorded in any persistent high score.
func Train(ctx context.Context, auto *Autopilot, grid types.Grid, settings types.Settings, episodes int, seed uint64) (TrainingStats, error) {
	g := game.NewGame(grid, nil, game.WithSeed(seed), game.WithSettings(settings))
	auto.SetEnabled(true)
	defer auto.SetEnabled(false)

	var stats TrainingStats
	total := 0
	for ep := 0; ep < episodes; ep++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		g.Restart()
		auto.Observe(g.Snapshot(), g.SetDirection)
		for i := 0; i < maxStepsPerEpisode && g.State() == types.Running; i++ {
			auto.Observe(g.Tick(), g.SetDirection)
		}
		score := g.Score()
		if g.State() == types.Running {
			g.Reset()
		}

		stats.Episodes++
		total += score
		if score > stats.BestScore {
			stats.BestScore = score
		}
		if (ep+1)%100 == 0 {
			auto.log.Infow("training progress",
				"episode", ep+1,
				"best", stats.BestScore,
				"avg", float64(total)/float64(stats.Episodes),
				"epsilon", auto.q.Epsilon)
		}
	}

	if stats.Episodes > 0 {
		stats.AvgScore = float64(total) / float64(stats.Episodes)
	}
	stats.States = auto.q.States()
	return stats, nil
}
