package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/chart"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#3498db")
	ColorText    = lipgloss.Color("#ecf0f1")
	ColorMuted   = lipgloss.Color("#7f8c8d")
	ColorError   = lipgloss.Color("#e74c3c")
	ColorBorder  = lipgloss.Color("#3d5a80")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	InputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1).
			Padding(0, 1)

	LinkStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(ColorPrimary)
)

// badgeColors maps the verdict style class to a background colour.
var badgeColors = map[string]lipgloss.Color{
	"strong-subscribe":   lipgloss.Color("#27ae60"),
	"cautious-subscribe": lipgloss.Color("#2ecc71"),
	"neutral":            lipgloss.Color("#95a5a6"),
	"avoid":              lipgloss.Color("#e74c3c"),
}

func badgeStyle(class string) lipgloss.Style {
	bg, ok := badgeColors[class]
	if !ok {
		bg = ColorMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(bg).Padding(0, 1)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// sentimentColor is the chart palette colour of an indicator.
func sentimentColor(indicator string) lipgloss.Color {
	switch indicator {
	case "positive":
		return hex(chart.Palette[model.Positive].Fill)
	case "negative":
		return hex(chart.Palette[model.Negative].Fill)
	default:
		return hex(chart.Palette[model.Neutral].Fill)
	}
}
