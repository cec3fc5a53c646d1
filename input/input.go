// Package input turns keys and gestures from any frontend into commands the
// host applies to the scheduler.
package input

import (
	"math"
	"strings"
	"unicode"

	"swipe-snake/game/types"
)

// TapThreshold is the minimum travel, on either axis, for a gesture to count
// as a swipe.
const TapThreshold = 10.0

type Kind int

const (
	None Kind = iota
	Turn
	StartRestart
	PauseResume
	ToggleWall
	SetLevel
	ToggleObstacles
	CycleFoodExpiry
	SaveSettings
	ToggleAutopilot
	Quit
)

var kindNames = [...]string{
	None:            "none",
	Turn:            "turn",
	StartRestart:    "start-restart",
	PauseResume:     "pause-resume",
	ToggleWall:      "toggle-wall",
	SetLevel:        "set-level",
	ToggleObstacles: "toggle-obstacles",
	CycleFoodExpiry: "cycle-food-expiry",
	SaveSettings:    "save-settings",
	ToggleAutopilot: "toggle-autopilot",
	Quit:            "quit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Command is one user action. Dir is set for Turn and Level for SetLevel.
type Command struct {
	Kind  Kind
	Dir   types.Direction
	Level int
}

// IsSettings reports whether c edits pending settings.
func (c Command) IsSettings() bool {
	switch c.Kind {
	case ToggleWall, SetLevel, ToggleObstacles, CycleFoodExpiry:
		return true
	}
	return false
}

func TurnCommand(dir types.Direction) Command {
	return Command{Kind: Turn, Dir: dir}
}

// Swipe classifies a gesture by its displacement. Movements under
// TapThreshold on both axes are taps and yield false. The dominant axis wins;
// a tie counts as vertical.
func Swipe(dx, dy float64) (types.Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax < TapThreshold && ay < TapThreshold {
		return 0, false
	}
	if ax > ay {
		if dx > 0 {
			return types.Right, true
		}
		return types.Left, true
	}
	if dy > 0 {
		return types.Down, true
	}
	return types.Up, true
}

// FromRune maps a printable key to a command.
func FromRune(r rune) Command {
	switch unicode.ToLower(r) {
	case 'w':
		return TurnCommand(types.Up)
	case 'a':
		return TurnCommand(types.Left)
	case 's':
		return TurnCommand(types.Down)
	case 'd':
		return TurnCommand(types.Right)
	case ' ':
		return Command{Kind: StartRestart}
	case 'p':
		return Command{Kind: PauseResume}
	case 'm':
		return Command{Kind: ToggleWall}
	case 'o':
		return Command{Kind: ToggleObstacles}
	case 'b':
		return Command{Kind: CycleFoodExpiry}
	case 'v':
		return Command{Kind: SaveSettings}
	case 'g':
		return Command{Kind: ToggleAutopilot}
	case 'q':
		return Command{Kind: Quit}
	}
	if r >= '1' && r <= '9' {
		return Command{Kind: SetLevel, Level: int(r - '0')}
	}
	return Command{}
}

// FromName maps named keys ("up", "enter", "esc", ...) to a command.
func FromName(name string) Command {
	switch strings.ToLower(name) {
	case "up":
		return TurnCommand(types.Up)
	case "down":
		return TurnCommand(types.Down)
	case "left":
		return TurnCommand(types.Left)
	case "right":
		return TurnCommand(types.Right)
	case "enter", "return":
		return Command{Kind: StartRestart}
	case "esc", "escape":
		return Command{Kind: Quit}
	}
	return Command{}
}
