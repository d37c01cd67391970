package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/qmlab/internal/quantum"
)

// Palette colors series in order, wrapping around.
var Palette = []string{"#00cccc", "#ff88ff", "#00ff88", "#ffaa00", "#8888ff"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func seriesBounds(series []quantum.Series) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	found := false
	for _, s := range series {
		for i := range s.X {
			if i >= len(s.Y) || !finite(s.X[i]) || !finite(s.Y[i]) {
				continue
			}
			b.minX, b.maxX = math.Min(b.minX, s.X[i]), math.Max(b.maxX, s.X[i])
			b.minY, b.maxY = math.Min(b.minY, s.Y[i]), math.Max(b.maxY, s.Y[i])
			found = true
		}
	}
	if !found {
		return b, false
	}

	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	b.maxX = b.minX + rangeX
	return b, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SeriesToSVG draws every series as a polyline on shared axes, with a
// legend in the top left corner. It returns "" when there is nothing to draw.
func SeriesToSVG(series []quantum.Series, width, height int) string {
	b, ok := seriesBounds(series)
	if !ok {
		return ""
	}
	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if b.minY < 0 && b.maxY > 0 {
		y0 := float64(height) - (0-b.minY)/rangeY*float64(height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444455" stroke-width="1"/>
`, y0, width, y0))
	}

	for n, s := range series {
		color := Palette[n%len(Palette)]
		var path strings.Builder
		for i := range s.X {
			if i >= len(s.Y) || !finite(s.X[i]) || !finite(s.Y[i]) {
				continue
			}
			x := (s.X[i] - b.minX) / rangeX * float64(width)
			y := float64(height) - (s.Y[i]-b.minY)/rangeY*float64(height)
			if path.Len() == 0 {
				path.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				path.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		if path.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, color, path.String()))
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+14*n, color, html.EscapeString(s.Name)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
