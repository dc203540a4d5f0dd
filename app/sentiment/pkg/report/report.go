// Package report renders analysis results as HTML and prints them to PDF.
package report

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/chart"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

//go:embed templates/report.html
var templateFS embed.FS

const chartSize = 320

var whitespace = regexp.MustCompile(`\s+`)

// BadgeClass turns a verdict into its CSS class: lower-cased with runs of
// whitespace replaced by "-", or "na" when empty.
func BadgeClass(verdict string) string {
	v := strings.TrimSpace(verdict)
	if v == "" || v == "N/A" {
		return "na"
	}
	return whitespace.ReplaceAllString(strings.ToLower(v), "-")
}

type view struct {
	Result     *model.AnalysisResult
	BadgeClass string
	Chart      template.URL
	Generated  string
}

// Renderer renders the HTML report.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"percent": chart.FormatPercent,
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl, now: time.Now}, nil
}

// Render writes the report for res, chart included.
func (r *Renderer) Render(res *model.AnalysisResult) ([]byte, error) {
	var img bytes.Buffer
	if err := chart.RenderPNG(&img, res.SentimentBreakdown, chartSize); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	v := view{
		Result:     res,
		BadgeClass: BadgeClass(res.Verdict),
		Chart:      template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Bytes())),
		Generated:  r.now().UTC().Format("2006-01-02 15:04:05 UTC"),
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, v); err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return out.Bytes(), nil
}

// Printer converts an HTML document to PDF.
type Printer interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// Generator renders and prints reports.
type Generator struct {
	renderer *Renderer
	printer  Printer
}

// NewGenerator creates a Generator.
func NewGenerator(r *Renderer, p Printer) *Generator {
	return &Generator{renderer: r, printer: p}
}

// PDF produces the PDF report for res.
func (g *Generator) PDF(ctx context.Context, res *model.AnalysisResult) ([]byte, error) {
	html, err := g.renderer.Render(res)
	if err != nil {
		return nil, err
	}
	return g.printer.PrintPDF(ctx, html)
}
