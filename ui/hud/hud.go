// Package hud builds the text and geometry both frontends draw, so the
// layout rules can be tested without a window or a terminal.
package hud

import (
	"fmt"
	"strings"
	"time"

	"swipe-snake/game"
	"swipe-snake/game/manager"
	"swipe-snake/game/types"
)

// View is everything a frontend draws beyond the board itself.
type View struct {
	Pending   types.Settings
	Dirty     bool
	Autopilot bool
	History   []manager.GameRecord
}

// Overlay returns the banner drawn over the board, or "" while playing.
func Overlay(snap game.Snapshot) string {
	switch snap.State {
	case types.NotStarted:
		return "Press START"
	case types.Paused:
		return "PAUSED"
	case types.GameOver:
		if cause := CauseText(snap.Cause); cause != "" {
			return "GAME OVER - " + cause
		}
		return "GAME OVER"
	}
	return ""
}

func CauseText(c types.CollisionType) string {
	switch c {
	case types.WallCollision:
		return "hit the wall"
	case types.SelfCollision:
		return "bit yourself"
	case types.ObstacleCollision:
		return "hit an obstacle"
	}
	return ""
}

func ScoreLine(snap game.Snapshot) string {
	return fmt.Sprintf("Score: %d  High: %d", snap.Score, snap.HighScore)
}

func FoodExpiryLabel(d time.Duration) string {
	if d <= 0 {
		return "never"
	}
	return fmt.Sprintf("%ds", int(d/time.Second))
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// SettingsLines describes the pending settings; a trailing * marks unsaved edits.
func SettingsLines(v View) []string {
	save := "Save"
	if v.Dirty {
		save = "Save*"
	}
	walls := v.Pending.WallMode.String()
	walls = strings.ToUpper(walls[:1]) + walls[1:]
	return []string{
		"Walls: " + walls,
		fmt.Sprintf("Level: %d", v.Pending.Level),
		"Obstacles: " + onOff(v.Pending.ObstaclesEnabled),
		"Food timer: " + FoodExpiryLabel(v.Pending.FoodExpiry),
		"[V] " + save,
		"Autopilot: " + onOff(v.Autopilot),
	}
}

// HelpLines lists the key bindings.
var HelpLines = []string{
	"Arrows/WASD  steer",
	"Space/Enter  start",
	"P  pause",
	"M  walls  1-5 level",
	"O  obstacles",
	"B  food timer",
	"G  autopilot",
	"Q/Esc  quit",
}

// Series is the recent score history scaled for a graph.
type Series struct {
	Scores []int
	Max    int
	Avg    float64
}

// History keeps the last n scores, oldest first. Max is at least 1.
func History(records []manager.GameRecord, n int) Series {
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	s := Series{Scores: make([]int, len(records)), Max: 1}
	total := 0
	for i, r := range records {
		s.Scores[i] = r.Score
		total += r.Score
		if r.Score > s.Max {
			s.Max = r.Score
		}
	}
	if len(records) > 0 {
		s.Avg = float64(total) / float64(len(records))
	}
	return s
}

// Layout places a grid of square cells inside an area.
type Layout struct {
	Cell    int
	OffsetX int
	OffsetY int
}

// Fit picks the largest cell size that fits grid into w x h and centers it.
// The cell size never drops below one.
func Fit(grid types.Grid, x, y, w, h int) Layout {
	cell := 1
	if grid.Width > 0 && grid.Height > 0 {
		cell = min(w/grid.Width, h/grid.Height)
	}
	if cell < 1 {
		cell = 1
	}
	return Layout{
		Cell:    cell,
		OffsetX: x + (w-cell*grid.Width)/2,
		OffsetY: y + (h-cell*grid.Height)/2,
	}
}

// Origin is the top-left pixel of cell p.
func (l Layout) Origin(p types.Point) (int, int) {
	return l.OffsetX + p.X*l.Cell, l.OffsetY + p.Y*l.Cell
}
