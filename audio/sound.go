// Package audio plays short cues for game events. Everything degrades to a
// no-op when no audio device is available.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"swipe-snake/game"
	"swipe-snake/logging"
)

const sampleRate = beep.SampleRate(44100)

type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	log         *zap.SugaredLogger
}

func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		muted: muted,
		log:   logging.Named("audio"),
	}
}

// Initialize opens the speaker. Muted managers never touch the device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debugw("speaker ready", "sample_rate", int(sampleRate))
	return nil
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// OnFoodEaten and OnGameOver match the scheduler hook signatures.
func (sm *SoundManager) OnFoodEaten(game.Snapshot) { sm.play(EatCue()) }
func (sm *SoundManager) OnGameOver(game.Snapshot)  { sm.play(GameOverCue()) }

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// EatCue is two short rising sine blips.
func EatCue() beep.Streamer {
	low, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return nil
	}
	high, err := generators.SineTone(sampleRate, 990)
	if err != nil {
		return nil
	}
	return quieter(beep.Seq(
		beep.Take(sampleRate.N(40*time.Millisecond), low),
		beep.Take(sampleRate.N(60*time.Millisecond), high),
	))
}

// GameOverCue is a falling buzz.
func GameOverCue() beep.Streamer {
	return quieter(beep.Take(sampleRate.N(400*time.Millisecond), &sweep{
		from: 330,
		to:   110,
		n:    sampleRate.N(400 * time.Millisecond),
	}))
}

func quieter(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: -2}
}

// sweep glides a square-ish tone from one frequency to another over n samples.
type sweep struct {
	from, to float64
	n        int
	pos      int
	phase    float64
}

func (g *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.n), 1)
		freq := g.from + (g.to-g.from)*progress

		v := 0.5*math.Sin(2*math.Pi*g.phase) + 0.2*math.Sin(6*math.Pi*g.phase)
		v *= 1 - progress

		samples[i][0] = v
		samples[i][1] = v

		g.phase += freq / float64(sampleRate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }
