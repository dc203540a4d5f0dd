package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iWorld-y/ipo_radar/app/console/internal/view"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/chart"
)

// BarChart draws the sentiment breakdown as a stacked bar. At most one
// chart is live; View draws nothing once it is disposed.
type BarChart struct {
	current *barHandle
}

type barHandle struct {
	owner *BarChart
	cfg   view.ChartConfig
}

// Create implements view.ChartWidget.
func (b *BarChart) Create(cfg view.ChartConfig) view.ChartHandle {
	h := &barHandle{owner: b, cfg: cfg}
	b.current = h
	return h
}

func (h *barHandle) Dispose() {
	if h.owner.current == h {
		h.owner.current = nil
	}
}

// Live reports whether a chart is displayed.
func (b *BarChart) Live() bool { return b.current != nil }

// View renders the bar width cells wide followed by the legend.
func (b *BarChart) View(width int) string {
	if b.current == nil {
		return ""
	}
	if width < 10 {
		width = 10
	}
	cfg := b.current.cfg

	var total float64
	for _, s := range cfg.Slices {
		if s.Value > 0 {
			total += s.Value
		}
	}

	var bar strings.Builder
	if total == 0 {
		bar.WriteString(LabelStyle.Render(strings.Repeat("░", width)))
	} else {
		cells := apportion(cfg.Slices, total, width)
		for i, s := range cfg.Slices {
			if cells[i] == 0 {
				continue
			}
			style := lipgloss.NewStyle().Foreground(hex(chart.Palette[s.Label].Fill))
			bar.WriteString(style.Render(strings.Repeat("█", cells[i])))
		}
	}

	legend := make([]string, len(cfg.Slices))
	for i, s := range cfg.Slices {
		swatch := lipgloss.NewStyle().Foreground(hex(chart.Palette[s.Label].Fill)).Render("■")
		legend[i] = swatch + " " + cfg.Tooltip(i)
	}
	return bar.String() + "\n" + strings.Join(legend, "   ")
}

// apportion splits width cells across slices by largest remainder.
func apportion(slices []view.ChartSlice, total float64, width int) []int {
	cells := make([]int, len(slices))
	rem := make([]float64, len(slices))
	used := 0
	for i, s := range slices {
		if s.Value <= 0 {
			continue
		}
		exact := s.Value / total * float64(width)
		cells[i] = int(math.Floor(exact))
		rem[i] = exact - float64(cells[i])
		used += cells[i]
	}
	for used < width {
		best := -1
		for i := range rem {
			if slices[i].Value > 0 && (best < 0 || rem[i] > rem[best]) {
				best = i
			}
		}
		cells[best]++
		rem[best] = -1
		used++
	}
	return cells
}
