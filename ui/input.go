package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"swipe-snake/input"
)

var namedKeys = []struct {
	key  int32
	name string
}{
	{rl.KeyUp, "up"},
	{rl.KeyDown, "down"},
	{rl.KeyLeft, "left"},
	{rl.KeyRight, "right"},
	{rl.KeyEnter, "enter"},
}

// InputReader collects keyboard and mouse-drag commands once per frame.
type InputReader struct {
	dragging  bool
	dragStart rl.Vector2
}

func (ir *InputReader) Poll() []input.Command {
	var cmds []input.Command

	for _, k := range namedKeys {
		if rl.IsKeyPressed(k.key) {
			cmds = append(cmds, input.FromName(k.name))
		}
	}
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		if cmd := input.FromRune(rune(r)); cmd.Kind != input.None {
			cmds = append(cmds, cmd)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ir.dragging = true
		ir.dragStart = rl.GetMousePosition()
	}
	if ir.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		ir.dragging = false
		end := rl.GetMousePosition()
		if dir, ok := input.Swipe(float64(end.X-ir.dragStart.X), float64(end.Y-ir.dragStart.Y)); ok {
			cmds = append(cmds, input.TurnCommand(dir))
		}
	}
	return cmds
}
