package chart

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

func TestSlices(t *testing.T) {
	s := Slices(model.Breakdown{Positive: 40, Neutral: 30, Negative: 30})
	require.Len(t, s, 3)
	assert.Equal(t, model.Positive, s[0].Label)
	assert.Equal(t, 40.0, s[0].Value)
	assert.Equal(t, model.Negative, s[2].Label)
	assert.Equal(t, color.RGBA{231, 76, 60, 255}, s[2].Fill)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "33.3%", FormatPercent(33.333))
	assert.Equal(t, "0.0%", FormatPercent(0))
}

func TestCSS(t *testing.T) {
	assert.Equal(t, "rgba(46, 204, 113, 0.7)", CSS(Palette[model.Positive].Fill, 0.7))
}

func TestRender_Geometry(t *testing.T) {
	const size = 200
	img, err := Render(model.Breakdown{Positive: 50, Negative: 50}, size)
	require.NoError(t, err)
	assert.Equal(t, size+legendHeight, img.Bounds().Dy())

	cy := legendHeight + size/2
	// Positive occupies the right half when starting at twelve o'clock.
	assert.Equal(t, Palette[model.Positive].Fill, img.RGBAAt(size/2+40, cy))
	assert.Equal(t, Palette[model.Negative].Fill, img.RGBAAt(size/2-40, cy))
	// Corners stay blank.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, img.Bounds().Dy()-1))
}

func TestRender_ZeroBreakdown(t *testing.T) {
	img, err := Render(model.Breakdown{}, 100)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(50, legendHeight+50))
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, model.Breakdown{Positive: 100}, 120))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(60, legendHeight+60).RGBA()
	assert.Equal(t, uint32(46), r>>8)
	assert.Equal(t, uint32(204), g>>8)
	assert.Equal(t, uint32(113), b>>8)
}
