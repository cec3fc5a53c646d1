// Package term is the tcell terminal frontend.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"swipe-snake/game"
	"swipe-snake/game/types"
	"swipe-snake/ui/hud"
)

// Each board cell is two columns wide so it looks roughly square.
const cellWidth = 2

var (
	styleDefault  = tcell.StyleDefault
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSnake    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleFood     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleOverlay  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var headRunes = map[types.Direction]rune{
	types.Up:    '^',
	types.Right: '>',
	types.Down:  'v',
	types.Left:  '<',
}

type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Transform maps a board cell to the screen column and row of its left half.
func Transform(p types.Point) (int, int) {
	return 1 + p.X*cellWidth, 2 + p.Y
}

func (r *Renderer) Draw(snap game.Snapshot, view hud.View) {
	s := r.screen
	s.Clear()

	r.text(0, 0, hud.ScoreLine(snap), styleDefault)
	r.text(24, 0, fmt.Sprintf("Speed: %dms", snap.Interval.Milliseconds()), styleDim)
	r.drawBorder(snap.Grid)

	for _, p := range snap.Obstacles {
		r.cell(p, '#', styleObstacle)
	}
	if snap.HasFood {
		r.cell(snap.Food, '*', styleFood)
	}
	if snap.State != types.NotStarted {
		for i := len(snap.Snake) - 1; i > 0; i-- {
			r.cell(snap.Snake[i], 'o', styleSnake)
		}
		if head, ok := snap.Head(); ok {
			r.cell(head, headRunes[snap.Direction], styleHead)
		}
	}

	if text := hud.Overlay(snap); text != "" {
		x := 1 + (snap.Grid.Width*cellWidth-len(text))/2
		r.text(max(x, 1), 2+snap.Grid.Height/2, text, styleOverlay)
	}

	panelX := snap.Grid.Width*cellWidth + 4
	y := 2
	for _, line := range hud.SettingsLines(view) {
		r.text(panelX, y, line, styleDefault)
		y++
	}
	y++
	for _, line := range hud.HelpLines {
		r.text(panelX, y, line, styleDim)
		y++
	}
	y++
	series := hud.History(view.History, 10)
	r.text(panelX, y, fmt.Sprintf("Games: %d  Avg: %.1f", len(view.History), series.Avg), styleDim)
	y++
	r.text(panelX, y, sparkline(series), styleSnake)

	s.Show()
}

func (r *Renderer) drawBorder(g types.Grid) {
	right, bottom := 1+g.Width*cellWidth, 2+g.Height
	r.screen.SetContent(0, 1, '+', nil, styleBorder)
	r.screen.SetContent(right, 1, '+', nil, styleBorder)
	r.screen.SetContent(0, bottom, '+', nil, styleBorder)
	r.screen.SetContent(right, bottom, '+', nil, styleBorder)
	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 1, '-', nil, styleBorder)
		r.screen.SetContent(x, bottom, '-', nil, styleBorder)
	}
	for y := 2; y < bottom; y++ {
		r.screen.SetContent(0, y, '|', nil, styleBorder)
		r.screen.SetContent(right, y, '|', nil, styleBorder)
	}
}

func (r *Renderer) cell(p types.Point, ch rune, style tcell.Style) {
	x, y := Transform(p)
	r.screen.SetContent(x, y, ch, nil, style)
	r.screen.SetContent(x+1, y, ' ', nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

var sparks = []rune("▁▂▃▄▅▆▇█")

func sparkline(s hud.Series) string {
	out := make([]rune, len(s.Scores))
	for i, score := range s.Scores {
		out[i] = sparks[score*(len(sparks)-1)/s.Max]
	}
	return string(out)
}
