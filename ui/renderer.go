package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"swipe-snake/game"
	"swipe-snake/game/types"
	"swipe-snake/ui/hud"
)

const (
	maxScores     = 50 // scores shown in the history graph
	borderPadding = 10
)

var (
	boardColor    = rl.Color{R: 24, G: 24, B: 24, A: 255}
	gridLineColor = rl.Color{R: 48, G: 48, B: 48, A: 255}
	snakeColor    = rl.Color{R: 46, G: 160, B: 67, A: 255}
	headColor     = rl.Color{R: 86, G: 211, B: 100, A: 255}
	obstacleColor = rl.Color{R: 130, G: 130, B: 130, A: 255}
)

type Renderer struct {
	screenWidth  int32
	screenHeight int32
	statsPanel   int32
	gameWidth    int32
	graphWidth   int32
	graphHeight  int32
	layout       hud.Layout
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = max(r.screenWidth/4, 200)
	r.gameWidth = r.screenWidth - r.statsPanel

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func (r *Renderer) Draw(snap game.Snapshot, view hud.View) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/32, r.statsPanel/12)
	lineHeight := fontSize + fontSize/3

	r.layout = hud.Fit(snap.Grid,
		borderPadding, borderPadding,
		int(r.gameWidth)-2*borderPadding, int(r.screenHeight)-2*borderPadding)

	r.drawBoard(snap)
	r.drawOverlay(snap, fontSize*2)
	r.drawStatsPanel(snap, view, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) cell(p types.Point) (int32, int32, int32) {
	x, y := r.layout.Origin(p)
	return int32(x), int32(y), int32(r.layout.Cell)
}

func (r *Renderer) drawBoard(snap game.Snapshot) {
	size := int32(r.layout.Cell)
	w, h := size*int32(snap.Grid.Width), size*int32(snap.Grid.Height)
	ox, oy := int32(r.layout.OffsetX), int32(r.layout.OffsetY)

	rl.DrawRectangle(ox-1, oy-1, w+2, h+2, rl.DarkGray)
	rl.DrawRectangle(ox, oy, w, h, boardColor)
	for x := int32(1); x < int32(snap.Grid.Width); x++ {
		rl.DrawLine(ox+x*size, oy, ox+x*size, oy+h, gridLineColor)
	}
	for y := int32(1); y < int32(snap.Grid.Height); y++ {
		rl.DrawLine(ox, oy+y*size, ox+w, oy+y*size, gridLineColor)
	}

	for _, p := range snap.Obstacles {
		x, y, s := r.cell(p)
		rl.DrawRectangle(x, y, s, s, obstacleColor)
	}

	if snap.HasFood {
		x, y, s := r.cell(snap.Food)
		rl.DrawCircle(x+s/2, y+s/2, float32(s)/2-1, rl.Red)
	}

	if snap.State == types.NotStarted {
		return
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		x, y, s := r.cell(snap.Snake[i])
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		rl.DrawRectangle(x+1, y+1, s-2, s-2, color)
	}
	if head, ok := snap.Head(); ok {
		r.drawHeading(head, snap.Direction)
	}
}

// drawHeading marks the head cell with a triangle pointing where it moves.
func (r *Renderer) drawHeading(head types.Point, dir types.Direction) {
	x, y, s := r.cell(head)
	fx, fy, fs := float32(x), float32(y), float32(s)
	half := fs / 2
	v := func(dx, dy float32) rl.Vector2 { return rl.Vector2{X: fx + dx, Y: fy + dy} }

	switch dir {
	case types.Right:
		rl.DrawTriangle(v(fs, half), v(half, 0), v(half, fs), rl.Yellow)
	case types.Left:
		rl.DrawTriangle(v(0, half), v(half, 0), v(half, fs), rl.Yellow)
	case types.Down:
		rl.DrawTriangle(v(half, fs), v(0, half), v(fs, half), rl.Yellow)
	default:
		rl.DrawTriangle(v(half, 0), v(0, half), v(fs, half), rl.Yellow)
	}
}

func (r *Renderer) drawOverlay(snap game.Snapshot, fontSize int32) {
	text := hud.Overlay(snap)
	if text == "" {
		return
	}
	w := int32(snap.Grid.Width * r.layout.Cell)
	h := int32(snap.Grid.Height * r.layout.Cell)
	ox, oy := int32(r.layout.OffsetX), int32(r.layout.OffsetY)

	rl.DrawRectangle(ox, oy, w, h, rl.Fade(rl.Black, 0.6))
	textWidth := rl.MeasureText(text, fontSize)
	rl.DrawText(text, ox+(w-textWidth)/2, oy+(h-fontSize)/2, fontSize, rl.White)
}

func (r *Renderer) drawStatsPanel(snap game.Snapshot, view hud.View, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	rl.DrawText(hud.ScoreLine(snap), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Speed: %dms", snap.Interval.Milliseconds()), statsX, statsY, fontSize, rl.LightGray)
	statsY += lineHeight * 3 / 2

	rl.DrawText("Settings:", statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	for _, line := range hud.SettingsLines(view) {
		rl.DrawText(line, statsX+5, statsY, fontSize, rl.LightGray)
		statsY += lineHeight
	}
	statsY += lineHeight / 2

	for _, line := range hud.HelpLines {
		rl.DrawText(line, statsX+5, statsY, fontSize, rl.Gray)
		statsY += lineHeight
	}

	r.drawHistoryGraph(view, statsX, fontSize)
}

func (r *Renderer) drawHistoryGraph(view hud.View, graphX, fontSize int32) {
	graphHeight := r.graphHeight
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, graphHeight, rl.White)
	rl.DrawText("History", graphX, graphY-fontSize-5, fontSize, rl.White)

	series := hud.History(view.History, maxScores)
	rl.DrawText(fmt.Sprintf("Games: %d  Avg: %.1f", len(view.History), series.Avg),
		graphX, r.screenHeight-fontSize-5, fontSize, rl.White)
	if len(series.Scores) < 2 {
		return
	}

	point := func(i, score int) (int32, int32) {
		x := graphX + int32(float32(r.graphWidth)*float32(i)/float32(maxScores-1))
		y := graphY + graphHeight - int32(float32(graphHeight)*float32(score)/float32(series.Max))
		return x, y
	}
	for i := 1; i < len(series.Scores); i++ {
		x1, y1 := point(i-1, series.Scores[i-1])
		x2, y2 := point(i, series.Scores[i])
		rl.DrawLine(x1, y1, x2, y2, headColor)
	}

	avgY := graphY + graphHeight - int32(float32(graphHeight)*float32(series.Avg)/float32(series.Max))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}
