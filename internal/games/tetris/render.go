package tetris

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout. Each grid cell is two characters wide so blocks look square.
const (
	cellW  = 2
	wellW  = engine.Width*cellW + 2
	wellH  = engine.Height + 2
	panelW = 14
	gap    = 2

	// MinWidth and MinHeight are the smallest screen the game draws on.
	MinWidth  = wellW + gap + panelW
	MinHeight = wellH
)

var cellColors = map[engine.Cell]core.Color{
	engine.Cyan:   core.ColorCyan,
	engine.Yellow: core.ColorYellow,
	engine.Purple: core.ColorMagenta,
	engine.Green:  core.ColorGreen,
	engine.Red:    core.ColorRed,
	engine.Blue:   core.ColorBlue,
	engine.Orange: core.ColorOrange,
}

// CellColor maps an engine color to a screen color.
func CellColor(c engine.Cell) core.Color {
	return cellColors[c]
}

// Render draws the well, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
		return
	}
	if g.session == nil {
		return
	}

	area := core.Centered(dst.Width(), dst.Height(), MinWidth, MinHeight)
	well := core.NewRect(area.X, area.Y, wellW, wellH)

	g.renderWell(dst, well)
	g.renderPanel(dst, area.X+wellW+gap, area.Y)

	restart := fmt.Sprintf("Score %d  %s to restart", g.score, keyLabel(g.cfg.Keys.Restart))
	switch {
	case g.won:
		renderOverlay(dst, "Sprint complete!", restart)
	case g.gameOver:
		renderOverlay(dst, "Game Over", restart)
	case g.paused:
		renderOverlay(dst, "Paused", fmt.Sprintf("Press %s to continue", keyLabel(g.cfg.Keys.Pause)))
	}
}

// keyLabel names the first key bound to an action.
func keyLabel(keys []string) string {
	if len(keys) == 0 {
		return "?"
	}
	return strings.ToUpper(keys[0])
}

// screenPos converts grid coordinates (row 0 at the bottom) to the top-left
// character of the cell on screen.
func screenPos(well core.Rect, x, y int) (int, int) {
	return well.X + 1 + x*cellW, well.Y + 1 + (engine.Height - 1 - y)
}

func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	dst.DrawBoxColored(well, core.ColorGray)

	grid := g.session.Grid()
	for y := range engine.Height {
		for x := range engine.Width {
			sx, sy := screenPos(well, x, y)
			dst.SetColored(sx+1, sy, '·', core.ColorDarkGray)
			if c, _ := grid.Get(x, y); c != engine.Empty {
				drawBlock(dst, sx, sy, '█', CellColor(c))
			}
		}
	}

	if !g.finished() {
		active := g.session.Active()
		for _, c := range g.session.GhostCells() {
			if active.Occupies(c) || !engine.InBounds(c.X, c.Y) {
				continue
			}
			sx, sy := screenPos(well, c.X, c.Y)
			drawBlock(dst, sx, sy, '░', CellColor(active.Color))
		}
	}

	for _, row := range g.flashRows {
		_, sy := screenPos(well, 0, row)
		dst.SetColored(well.X, sy, '▶', core.ColorBrightWhite)
		dst.SetColored(well.Right()-1, sy, '◀', core.ColorBrightWhite)
	}
}

func drawBlock(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, "NEXT", core.ColorWhite)
	drawPreview(dst, x, y+1, g.session.NextCells(), core.ColorDefault)

	holdColor := core.ColorWhite
	var dim core.Color
	if !g.session.CanHold() {
		holdColor, dim = core.ColorGray, core.ColorGray
	}
	dst.DrawTextColored(x, y+4, "HOLD", holdColor)
	drawPreview(dst, x, y+5, g.session.HeldCells(), dim)

	stats := []struct {
		label, value string
	}{
		{"SCORE", fmt.Sprint(g.score)},
		{"LINES", g.linesLabel()},
		{"LEVEL", fmt.Sprint(g.Level())},
	}
	for i, s := range stats {
		row := y + 8 + i*3
		dst.DrawTextColored(x, row, s.label, core.ColorWhite)
		dst.DrawTextColored(x, row+1, s.value, core.ColorBrightCyan)
	}

	dst.DrawTextColored(x, y+17, g.Title(), core.ColorGray)
}

func (g *Game) linesLabel() string {
	if g.mode == ModeSprint {
		return fmt.Sprintf("%d/%d", g.lines, g.cfg.Sprint.Lines)
	}
	return fmt.Sprint(g.lines)
}

// drawPreview draws a piece given in its local frame into a two-row box
// whose top-left is (x, y). A non-default override color replaces the
// piece color.
func drawPreview(dst *core.Screen, x, y int, cells [4]engine.CellInfo, override core.Color) {
	for _, c := range cells {
		color := CellColor(c.Color)
		if override != core.ColorDefault {
			color = override
		}
		drawBlock(dst, x+c.X*cellW, y+(1-c.Y), '█', color)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.Centered(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorWhite)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2)
}
