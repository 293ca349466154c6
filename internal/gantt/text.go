package gantt

import (
	"math"
	"strings"
)

// Glyphs used by the text renderer.
const (
	GlyphFilled = '█'
	GlyphEmpty  = '░'
	GlyphTrack  = '·'
	GlyphToday  = '│'
)

// Span maps a percent range onto a canvas of cols character cells.
// The result always covers at least one cell and stays inside the canvas.
func Span(left, width float64, cols int) (start, n int) {
	if cols <= 0 {
		return 0, 0
	}

	start = int(math.Floor(left / 100 * float64(cols)))
	end := int(math.Ceil((left + width) / 100 * float64(cols)))

	if start > cols-1 {
		start = cols - 1
	}
	if start < 0 {
		start = 0
	}
	if end > cols {
		end = cols
	}
	n = end - start
	if n < 1 {
		n = 1
	}
	return start, n
}

// Column returns the cell index of a percent position on a canvas of cols cells.
func Column(pct float64, cols int) int {
	c := int(math.Floor(pct / 100 * float64(cols)))
	if c >= cols {
		c = cols - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

// BarCells renders a bar as cols runes: the track, the bar with its filled portion,
// and the today marker where it does not overlap the bar.
func (l Layout) BarCells(b Bar, cols int) string {
	if cols <= 0 {
		return ""
	}

	cells := make([]rune, cols)
	for i := range cells {
		cells[i] = GlyphTrack
	}

	start, n := Span(b.Left, b.Width, cols)
	filled := int(math.Round(float64(n) * float64(b.Fill) / 100))
	for i := 0; i < n; i++ {
		if i < filled {
			cells[start+i] = GlyphFilled
		} else {
			cells[start+i] = GlyphEmpty
		}
	}

	if l.HasToday {
		c := Column(l.TodayOffset, cols)
		if cells[c] == GlyphTrack {
			cells[c] = GlyphToday
		}
	}

	return string(cells)
}

// HeaderCells renders the month header on a canvas of cols cells. Each month label
// is truncated to the width of its bucket; the last bucket absorbs rounding slack.
func (l Layout) HeaderCells(cols int) string {
	if cols <= 0 {
		return ""
	}

	var sb strings.Builder
	used := 0
	for i, m := range l.Months {
		w := int(math.Round(m.Width / 100 * float64(cols)))
		if i == len(l.Months)-1 || used+w > cols {
			w = cols - used
		}
		if w <= 0 {
			continue
		}

		label := []rune(m.Label())
		if len(label) > w-1 {
			label = label[:max(0, w-1)]
		}
		sb.WriteString(string(label))
		sb.WriteString(strings.Repeat(" ", w-len(label)))
		used += w
	}
	return sb.String()
}
