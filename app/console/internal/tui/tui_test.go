package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/ipo_radar/app/console/internal/api"
	"github.com/iWorld-y/ipo_radar/app/console/internal/view"
)

type stubFetcher struct {
	err error
}

func (s stubFetcher) Fetch(_ context.Context, name string) (*api.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	score := 3.2
	verdict := "Cautious Subscribe"
	pos, neu, neg := 40.0, 30.0, 30.0
	return &api.Result{
		CompanyName:          &name,
		MarketSentimentScore: &score,
		Verdict:              &verdict,
		Highlights:           &api.Highlights{Positive: []string{"Strong pre-booking."}},
		SentimentBreakdown:   &api.Breakdown{Positive: &pos, Neutral: &neu, Negative: &neg},
	}, nil
}

type stubNavigator struct{ opened []string }

func (n *stubNavigator) Open(u string) error {
	n.opened = append(n.opened, u)
	return nil
}

func exportURL(name string) string { return "http://svc/api/sentiment/pdf?ipo_name=" + name }

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// run executes cmd and feeds outcome messages back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if out, ok := c().(outcomeMsg); ok {
				m.Update(out)
			}
		}
	case outcomeMsg, exportedMsg:
		m.Update(msg)
	}
}

func TestModel_SearchAndExport(t *testing.T) {
	nav := &stubNavigator{}
	m := New(context.Background(), stubFetcher{}, nav, exportURL)

	typeText(m, "Acme")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.doc.Frame().Loading)
	assert.Contains(t, m.View(), "Analyzing")

	run(t, m, cmd)
	f := m.doc.Frame()
	require.True(t, f.Results)
	assert.True(t, m.chart.Live())

	out := m.View()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "3.20")
	assert.Contains(t, out, "Strong pre-booking.")
	assert.Contains(t, out, "No specific highlights found.")
	assert.Contains(t, out, "No snippets available.")
	assert.Contains(t, out, "Positive: 40.0%")
	assert.Contains(t, out, "ctrl+s")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	run(t, m, cmd)
	assert.Equal(t, []string{"http://svc/api/sentiment/pdf?ipo_name=Acme"}, nav.opened)
	assert.Contains(t, m.View(), "Report opened")
}

func TestModel_EmptyInput(t *testing.T) {
	m := New(context.Background(), stubFetcher{}, &stubNavigator{}, exportURL)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), view.MsgEmptyInput)
}

func TestModel_ExportBeforeSearch(t *testing.T) {
	nav := &stubNavigator{}
	m := New(context.Background(), stubFetcher{}, nav, exportURL)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Empty(t, nav.opened)
	assert.Contains(t, m.View(), view.MsgExportFirst)
}

func TestModel_ExportWhileLoading(t *testing.T) {
	nav := &stubNavigator{}
	m := New(context.Background(), stubFetcher{}, nav, exportURL)
	typeText(m, "Acme")
	_, search := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.True(t, m.doc.Frame().Loading)
	assert.Contains(t, m.View(), msgExportPending)
	assert.Empty(t, nav.opened)

	run(t, m, search)
	assert.True(t, m.doc.Frame().Results)
}

func TestModel_FetchError(t *testing.T) {
	m := New(context.Background(), stubFetcher{err: errors.New("refused")}, &stubNavigator{}, exportURL)
	typeText(m, "Acme")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)
	assert.Contains(t, m.View(), view.MsgFetchFailed)
	assert.NotContains(t, m.View(), "ctrl+s")
}

func TestModel_QuitClosesController(t *testing.T) {
	m := New(context.Background(), stubFetcher{}, &stubNavigator{}, exportURL)
	typeText(m, "Acme")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)
	require.True(t, m.chart.Live())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, m.chart.Live())
	assert.Nil(t, m.ctrl.Submit("Other"))
}

func TestBarChart(t *testing.T) {
	b := &BarChart{}
	cfg := view.RenderChart(nil)
	h1 := b.Create(cfg)
	h2 := b.Create(cfg)
	h1.Dispose()
	assert.True(t, b.Live())
	h2.Dispose()
	assert.False(t, b.Live())
	assert.Empty(t, b.View(40))
}

func TestApportion(t *testing.T) {
	slices := []view.ChartSlice{{Value: 33.3}, {Value: 33.3}, {Value: 33.4}}
	cells := apportion(slices, 100, 10)
	sum := 0
	for _, c := range cells {
		sum += c
	}
	assert.Equal(t, 10, sum)
	assert.Equal(t, []int{0, 10, 0}, apportion([]view.ChartSlice{{}, {Value: 5}, {}}, 5, 10))
}

func TestOpenCommand(t *testing.T) {
	name, args := openCommand("darwin", "http://x")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"http://x"}, args)

	name, args = openCommand("windows", "http://x")
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, "http://x", args[len(args)-1])

	name, _ = openCommand("linux", "http://x")
	assert.Equal(t, "xdg-open", name)
}

func TestBrowser_Open(t *testing.T) {
	var got []string
	b := &Browser{goos: "linux", run: func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}}
	require.NoError(t, b.Open("http://svc/report"))
	assert.Equal(t, "xdg-open http://svc/report", strings.Join(got, " "))
}
