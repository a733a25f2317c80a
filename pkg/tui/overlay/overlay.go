// Package overlay draws a box on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Placement positions the foreground. Horizontal and Vertical use the
// lipgloss positions (Left/Top is 0, Center is 0.5, Right/Bottom is 1).
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Centered places the foreground in the middle of the screen.
var Centered = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

// Compose draws foreground over background on a width x height screen. Rows
// covered by the foreground keep the background to the left of it.
func Compose(background string, width, height int, foreground string, p Placement) string {
	bg := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}

	fg := strings.Split(foreground, "\n")
	fw := 0
	for _, line := range fg {
		if w := lipgloss.Width(line); w > fw {
			fw = w
		}
	}
	if fw > width {
		fw = width
	}
	if len(fg) > height {
		fg = fg[:height]
	}

	x := offset(width, fw, p.Horizontal, p.MarginX)
	y := offset(height, len(fg), p.Vertical, p.MarginY)

	for i, line := range fg {
		row := y + i
		left := truncate.String(bg[row], uint(x))
		left += strings.Repeat(" ", x-lipgloss.Width(left))
		bg[row] = left + pad(truncate.String(line, uint(fw)), fw)
	}
	return strings.Join(bg, "\n")
}

func offset(total, size int, pos lipgloss.Position, margin int) int {
	free := total - size
	if free <= 0 {
		return 0
	}
	off := int(float64(free) * float64(pos))
	switch {
	case pos <= lipgloss.Left:
		off += margin
	case pos >= lipgloss.Right:
		off -= margin
	}
	if off < 0 {
		off = 0
	}
	if off > free {
		off = free
	}
	return off
}

// normalize keeps the last height lines of view, padding with blank rows.
func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if height <= 0 {
		return lines
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
