// Package chart draws the sentiment breakdown pie chart.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

// Colors is the fill and border colour of one category.
type Colors struct {
	Fill   color.RGBA
	Border color.RGBA
}

// Palette is shared by the server-rendered PNG and the console chart.
var Palette = map[string]Colors{
	model.Positive: {Fill: color.RGBA{46, 204, 113, 255}, Border: color.RGBA{39, 174, 96, 255}},
	model.Neutral:  {Fill: color.RGBA{149, 165, 166, 255}, Border: color.RGBA{127, 140, 141, 255}},
	model.Negative: {Fill: color.RGBA{231, 76, 60, 255}, Border: color.RGBA{192, 57, 43, 255}},
}

// Labels is the category order used by every chart.
var Labels = []string{model.Positive, model.Neutral, model.Negative}

// Slice is one pie segment.
type Slice struct {
	Label string
	Value float64
	Colors
}

// Slices returns the breakdown as Positive, Neutral, Negative slices.
func Slices(b model.Breakdown) []Slice {
	values := []float64{b.Positive, b.Neutral, b.Negative}
	out := make([]Slice, len(Labels))
	for i, l := range Labels {
		out[i] = Slice{Label: l, Value: values[i], Colors: Palette[l]}
	}
	return out
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// CSS renders c as a CSS rgba() value with the given alpha.
func CSS(c color.RGBA, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

const (
	legendHeight = 32
	borderWidth  = 1.5
)

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func legendFace() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			faceErr = err
			return
		}
		face = truetype.NewFace(f, &truetype.Options{Size: 13, DPI: 72, Hinting: font.HintingFull})
	})
	return face, faceErr
}

// Render draws the pie with a legend above it. The first slice starts at
// twelve o'clock and slices run clockwise. size is the pie area's side.
func Render(b model.Breakdown, size int) (*image.RGBA, error) {
	if size < 64 {
		size = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size+legendHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	slices := Slices(b)
	if err := drawLegend(img, slices); err != nil {
		return nil, err
	}
	drawPie(img, slices, size)
	return img, nil
}

// RenderPNG writes the chart as PNG.
func RenderPNG(w io.Writer, b model.Breakdown, size int) error {
	img, err := Render(b, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawPie(img *image.RGBA, slices []Slice, size int) {
	var total float64
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return
	}

	cx := float64(size) / 2
	cy := float64(legendHeight) + float64(size)/2
	radius := float64(size)/2 - 4

	bounds := make([]float64, len(slices))
	var acc float64
	for i, s := range slices {
		if s.Value > 0 {
			acc += s.Value / total
		}
		bounds[i] = acc * 2 * math.Pi
	}

	for y := legendHeight; y < img.Bounds().Dy(); y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Hypot(dx, dy)
			if dist > radius {
				continue
			}
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			idx := sliceAt(bounds, angle)
			c := slices[idx].Fill
			if radius-dist <= borderWidth || nearEdge(bounds, angle, dist) {
				c = slices[idx].Border
			}
			img.SetRGBA(x, y, c)
		}
	}
}

func sliceAt(bounds []float64, angle float64) int {
	for i, b := range bounds {
		if angle < b {
			return i
		}
	}
	return len(bounds) - 1
}

// nearEdge reports whether a point lies on a boundary between two slices.
func nearEdge(bounds []float64, angle, dist float64) bool {
	var start float64
	for _, b := range bounds {
		if b > start && b < 2*math.Pi {
			if math.Abs(angle-b)*dist <= borderWidth/2 {
				return true
			}
		}
		start = b
	}
	return false
}

func drawLegend(img *image.RGBA, slices []Slice) error {
	face, err := legendFace()
	if err != nil {
		return fmt.Errorf("load legend font: %w", err)
	}

	const box = 12
	const gap = 18
	widths := make([]int, len(slices))
	total := 0
	for i, s := range slices {
		widths[i] = box + 6 + font.MeasureString(face, s.Label).Ceil()
		total += widths[i]
	}
	total += gap * (len(slices) - 1)

	x := (img.Bounds().Dx() - total) / 2
	if x < 4 {
		x = 4
	}
	top := (legendHeight - box) / 2
	for i, s := range slices {
		draw.Draw(img, image.Rect(x, top, x+box, top+box), image.NewUniform(s.Border), image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(x+1, top+1, x+box-1, top+box-1), image.NewUniform(s.Fill), image.Point{}, draw.Src)

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{102, 102, 102, 255}),
			Face: face,
			Dot:  fixed.P(x+box+6, top+box-1),
		}
		d.DrawString(s.Label)
		x += widths[i] + gap
	}
	return nil
}
