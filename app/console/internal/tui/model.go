// Package tui is the terminal front end of the sentiment view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iWorld-y/ipo_radar/app/console/internal/view"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
)

const msgExportPending = "Analysis in progress. The report can be downloaded once it finishes."

// outcomeMsg carries a resolved request back to the event loop.
type outcomeMsg view.Outcome

type exportedMsg struct{ err error }

// Model is the bubbletea model driving a view.Controller.
type Model struct {
	ctx     context.Context
	ctrl    *view.Controller
	doc     *Document
	chart   *BarChart
	input   textinput.Model
	spinner spinner.Model
	width   int
	notice  string
}

// New creates the model. exportURL builds the report URL for a name.
func New(ctx context.Context, fetcher view.Fetcher, nav view.Navigator, exportURL func(string) string) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter IPO / company name"
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	m := &Model{
		ctx:     ctx,
		doc:     &Document{},
		chart:   &BarChart{},
		input:   ti,
		spinner: sp,
		width:   80,
	}
	m.ctrl = view.New(view.Config{
		Fetcher:   fetcher,
		Document:  m.doc,
		Chart:     m.chart,
		Navigator: nav,
		ExportURL: exportURL,
	})
	return m
}

// Controller exposes the underlying controller.
func (m *Model) Controller() *view.Controller { return m.ctrl }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.ctrl.Close()
			return m, tea.Quit
		case "enter":
			m.notice = ""
			req := m.ctrl.Submit(m.input.Value())
			if req == nil {
				return m, nil
			}
			return m, tea.Batch(m.spinner.Tick, m.resolve(req))
		case "ctrl+s", "f2":
			m.notice = ""
			return m, m.export()
		}

	case outcomeMsg:
		if !m.ctrl.Complete(view.Outcome(msg)) {
			logger.Log.Debugf("dropped stale response for %q", msg.Name)
			return m, nil
		}
		if m.notice == msgExportPending {
			m.notice = ""
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.notice = "Could not open the report: " + msg.err.Error()
		} else {
			m.notice = "Report opened in your browser."
		}
		return m, nil

	case spinner.TickMsg:
		if !m.doc.Frame().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resolve(req *view.Request) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		return outcomeMsg(ctrl.Resolve(ctx, req))
	}
}

func (m *Model) export() tea.Cmd {
	err := m.ctrl.Export()
	if errors.Is(err, view.ErrExportUnavailable) {
		if m.doc.Frame().Loading {
			m.notice = msgExportPending
		}
		return nil
	}
	return func() tea.Msg { return exportedMsg{err: err} }
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("IPO Radar"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Market sentiment for upcoming IPOs"))
	b.WriteString("\n")
	b.WriteString(InputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	f := m.doc.Frame()
	switch {
	case f.Loading:
		b.WriteString(fmt.Sprintf(" %s Analyzing news sentiment...\n", m.spinner.View()))
	case f.Error:
		b.WriteString(ErrorStyle.Render(f.ErrorMessage))
		b.WriteString("\n")
	case f.Results && f.Content != nil:
		b.WriteString(m.renderContent(f.Content))
	}

	if m.notice != "" {
		b.WriteString(LabelStyle.Render(" " + m.notice))
		b.WriteString("\n")
	}

	help := "enter analyze • esc quit"
	if f.Download {
		help = "enter analyze • ctrl+s download PDF report • esc quit"
	}
	b.WriteString(HelpStyle.Render(help))
	return b.String()
}

func (m *Model) contentWidth() int {
	w := m.width - 6
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) renderContent(c *view.Content) string {
	w := m.contentWidth()

	var summary strings.Builder
	summary.WriteString(HeadingStyle.Render(c.CompanyName) + "\n")
	summary.WriteString(LabelStyle.Render("IPO date: ") + c.IPODate + "\n")
	summary.WriteString(LabelStyle.Render("Market sentiment score: ") + c.Score + " / 5\n")
	summary.WriteString(LabelStyle.Render("Articles analysed: ") + c.ArticleCount + "\n")
	badgeClass := "na"
	if len(c.Badge.Classes) > 1 {
		badgeClass = c.Badge.Classes[1]
	}
	summary.WriteString(LabelStyle.Render("Verdict: ") + badgeStyle(badgeClass).Render(c.Badge.Text) + "\n\n")
	summary.WriteString(m.chart.View(w))

	var hl strings.Builder
	hl.WriteString(HeadingStyle.Render("Positive highlights") + "\n")
	for _, h := range c.PositiveHighlights {
		hl.WriteString(bullet(h, w) + "\n")
	}
	hl.WriteString(HeadingStyle.Render("Negative highlights") + "\n")
	for _, h := range c.NegativeHighlights {
		hl.WriteString(bullet(h, w) + "\n")
	}

	var sn strings.Builder
	sn.WriteString(HeadingStyle.Render("Top snippets") + "\n")
	for _, s := range c.Snippets {
		if s.Placeholder {
			sn.WriteString(s.Text + "\n")
			continue
		}
		marker := lipgloss.NewStyle().Foreground(sentimentColor(s.Indicator)).Render("▌")
		sn.WriteString(marker + " " + runewidth.Truncate(s.Text, w-2, "…") + "\n")
		source := s.Source.Label
		if s.Source.IsLink() {
			source = LinkStyle.Render(source)
		}
		sn.WriteString("  " + source + "\n")
	}

	return CardStyle.Render(strings.TrimRight(summary.String(), "\n")) + "\n" +
		CardStyle.Render(strings.TrimRight(hl.String(), "\n")) + "\n" +
		CardStyle.Render(strings.TrimRight(sn.String(), "\n")) + "\n"
}

func bullet(s string, width int) string {
	return "• " + runewidth.Truncate(s, width-2, "…")
}
