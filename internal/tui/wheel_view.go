package tui

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/triviawheel/internal/wheel"
)

// The dial is drawn on a character grid twice as wide as it is tall, which
// keeps the disc roughly circular in common terminal fonts.

const (
	minDialSize = 11
	labelRadius = 0.68
)

const (
	styleBlank uint8 = iota
	styleRim
	styleEdge
	styleFocus
	styleWedgeBase
)

var dialStyles = func() []lipgloss.Style {
	cycle := WedgeColors()
	styles := make([]lipgloss.Style, int(styleWedgeBase)+len(cycle))
	styles[styleBlank] = lipgloss.NewStyle()
	styles[styleRim] = lipgloss.NewStyle().Foreground(colorSurface2)
	styles[styleEdge] = lipgloss.NewStyle().Foreground(colorOverlay0)
	styles[styleFocus] = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	for i, c := range cycle {
		styles[int(styleWedgeBase)+i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}()

// labelStyle maps a board number to its wedge color style, matching the
// board grid coloring.
func labelStyle(value int) uint8 {
	cycle := len(WedgeColors())
	i := (value - 1) % cycle
	if i < 0 {
		i += cycle
	}
	return styleWedgeBase + uint8(i)
}

// dialAngle returns the session rotation at the given moment, easing
// cubic-out from Start to Target over the session duration.
func dialAngle(s wheel.Session, now time.Time) float64 {
	if s.Duration <= 0 {
		return s.Target
	}
	p := float64(now.Sub(s.Began)) / float64(s.Duration)
	if p <= 0 {
		return s.Start
	}
	if p >= 1 {
		return s.Target
	}
	ease := 1 - math.Pow(1-p, 3)
	return s.Start + (s.Target-s.Start)*ease
}

// renderDial draws the wheel at the given rotation. Labels sit in ascending
// order around the disc; the pointer at the top marks the winning wedge, and
// the hub repeats the number currently under it. size is the dial height in
// rows and is forced odd.
func renderDial(labels []int, rotation float64, size int) string {
	n := len(labels)
	if n == 0 {
		return ""
	}
	if size < minDialSize {
		size = minDialSize
	}
	if size%2 == 0 {
		size++
	}
	h := size
	w := 2*size + 1
	cy := h / 2
	cx := w / 2
	ry := cy - 1
	rx := 2 * ry

	// Row 0 holds the pointer; the disc is shifted down one row.
	grid := newDialGrid(h+1, w)

	for deg := 0.0; deg < 360; deg += 5 {
		y, x := ellipsePoint(deg, cy, cx, ry, rx, 1.0)
		grid.set(y+1, x, '·', styleRim)
	}

	wedge := 360.0 / float64(n)
	hubIdx := ((int(math.Round(math.Mod(rotation, 360)/wedge)) % n) + n) % n

	// Wedge separators sit on the rim halfway between neighbouring labels.
	if n > 1 {
		for i := 0; i < n; i++ {
			deg := (float64(i)+0.5)*wedge - rotation - 90
			y, x := ellipsePoint(deg, cy, cx, ry, rx, 1.0)
			grid.set(y+1, x, '•', styleEdge)
		}
	}

	// Crowded wheels drop labels to every k-th wedge. The label under the
	// pointer is drawn last so it always survives overlaps.
	maxLabels := int(math.Pi * float64(rx+ry) / 8)
	if maxLabels < 1 {
		maxLabels = 1
	}
	k := 1
	if n > maxLabels {
		k = (n + maxLabels - 1) / maxLabels
	}
	for i := 0; i < n; i++ {
		if i == hubIdx || i%k != 0 {
			continue
		}
		deg := float64(i)*wedge - rotation - 90
		y, x := ellipsePoint(deg, cy, cx, ry, rx, labelRadius)
		grid.setCentered(y+1, x, strconv.Itoa(labels[i]), labelStyle(labels[i]))
	}
	focusDeg := float64(hubIdx)*wedge - rotation - 90
	fy, fx := ellipsePoint(focusDeg, cy, cx, ry, rx, labelRadius)
	grid.setCentered(fy+1, fx, strconv.Itoa(labels[hubIdx]), styleFocus)

	grid.setCentered(cy+1, cx, strconv.Itoa(labels[hubIdx]), styleFocus)
	grid.set(0, cx, '▼', styleFocus)

	return grid.String()
}

// ellipsePoint maps an angle in degrees to grid coordinates on the ellipse
// centered at (cy, cx), scaled toward the center by scale.
func ellipsePoint(deg float64, cy, cx, ry, rx int, scale float64) (int, int) {
	rad := deg * math.Pi / 180
	y := cy + int(math.Round(scale*float64(ry)*math.Sin(rad)))
	x := cx + int(math.Round(scale*float64(rx)*math.Cos(rad)))
	return y, x
}

// dialSize picks the largest dial that fits the current window, capped by the
// configured wheel size.
func (a *App) dialSize() int {
	size := a.cfg.UI.WheelSize
	if a.width > 0 {
		if m := (a.width - 8) / 2; size > m {
			size = m
		}
	}
	if a.height > 0 {
		if m := a.height - 8; size > m {
			size = m
		}
	}
	if size < minDialSize {
		size = minDialSize
	}
	return size
}

// ---------------------------------------------------------------------------
// Character grid
// ---------------------------------------------------------------------------

type dialGrid struct {
	cells  [][]rune
	styles [][]uint8
}

func newDialGrid(h, w int) *dialGrid {
	cells := make([][]rune, h)
	styles := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		styles[i] = make([]uint8, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &dialGrid{cells: cells, styles: styles}
}

func (g *dialGrid) set(y, x int, r rune, style uint8) {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return
	}
	g.cells[y][x] = r
	g.styles[y][x] = style
}

// setCentered writes s centered on column x. Labels are ASCII digits, so
// byte offsets are fine.
func (g *dialGrid) setCentered(y, x int, s string, style uint8) {
	start := x - len(s)/2
	for i, r := range s {
		g.set(y, start+i, r, style)
	}
}

// String renders the grid, styling runs of identically styled cells together
// to keep the escape-sequence volume down.
func (g *dialGrid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		x := 0
		for x < len(row) {
			style := g.styles[y][x]
			start := x
			for x < len(row) && g.styles[y][x] == style {
				x++
			}
			chunk := string(row[start:x])
			if style == styleBlank {
				b.WriteString(chunk)
			} else {
				b.WriteString(dialStyles[style].Render(chunk))
			}
		}
	}
	return b.String()
}
