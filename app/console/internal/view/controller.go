package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iWorld-y/ipo_radar/app/console/internal/api"
)

var (
	// ErrExportUnavailable is returned by Export before a successful analysis.
	ErrExportUnavailable = errors.New("export unavailable: no successful analysis")
	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("view controller closed")
)

// Fetcher performs the analysis request.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (*api.Result, error)
}

// Document displays frames.
type Document interface {
	Apply(f Frame)
}

// ChartWidget creates chart instances.
type ChartWidget interface {
	Create(cfg ChartConfig) ChartHandle
}

// ChartHandle is a live chart instance.
type ChartHandle interface {
	Dispose()
}

// Navigator opens a URL in a new browsing context.
type Navigator interface {
	Open(url string) error
}

// Config wires a Controller to its collaborators.
type Config struct {
	Fetcher   Fetcher
	Document  Document
	Chart     ChartWidget
	Navigator Navigator
	// ExportURL builds the report URL for a company name.
	ExportURL func(name string) string
}

// Request is an issued analysis request.
type Request struct {
	Token uint64
	Name  string
}

// Outcome is the result of resolving a Request.
type Outcome struct {
	Token  uint64
	Name   string
	Result *api.Result
	Err    error
}

// Controller drives one view session. Its methods other than Resolve must
// be called from a single event loop.
type Controller struct {
	cfg          Config
	state        State
	latest       uint64
	currentQuery string
	chart        ChartHandle
	closed       bool
}

// New creates a controller and displays the idle frame.
func New(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	c.transition(IdleState())
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// CurrentQuery is the name of the last successful analysis.
func (c *Controller) CurrentQuery() string { return c.currentQuery }

// Submit validates input and starts a request. It returns nil when the
// input is blank, after showing the validation error.
func (c *Controller) Submit(input string) *Request {
	if c.closed {
		return nil
	}
	// A blank submission still supersedes any request in flight.
	c.latest++
	name := strings.TrimSpace(input)
	if name == "" {
		c.transition(ErrorState(MsgEmptyInput))
		return nil
	}
	c.transition(LoadingState())
	return &Request{Token: c.latest, Name: name}
}

// Resolve performs the request. It does not touch controller state and may
// run off the event loop.
func (c *Controller) Resolve(ctx context.Context, req *Request) Outcome {
	res, err := c.cfg.Fetcher.Fetch(ctx, req.Name)
	return Outcome{Token: req.Token, Name: req.Name, Result: res, Err: err}
}

// Complete applies an outcome. Outcomes of superseded requests are
// discarded and reported as false.
func (c *Controller) Complete(o Outcome) bool {
	if c.closed || o.Token != c.latest {
		return false
	}

	if o.Err != nil {
		var he *api.HTTPError
		if errors.As(o.Err, &he) {
			c.transition(ErrorState(he.Error()))
		} else {
			c.transition(ErrorState(MsgFetchFailed))
		}
		return true
	}
	if o.Result == nil {
		c.transition(ErrorState(MsgFetchFailed))
		return true
	}

	c.currentQuery = o.Name
	c.transition(SuccessState(o.Result))
	return true
}

// Search submits, resolves and completes in one call.
func (c *Controller) Search(ctx context.Context, input string) {
	req := c.Submit(input)
	if req == nil {
		return
	}
	c.Complete(c.Resolve(ctx, req))
}

// Export opens the PDF report of the last successful analysis. While a
// request is loading the export is refused and the state is left alone.
func (c *Controller) Export() error {
	if c.closed {
		return ErrClosed
	}
	if c.state.Phase == Loading {
		return ErrExportUnavailable
	}
	if c.state.Phase != Succeeded || c.currentQuery == "" {
		c.transition(ErrorState(MsgExportFirst))
		return ErrExportUnavailable
	}
	if err := c.cfg.Navigator.Open(c.cfg.ExportURL(c.currentQuery)); err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	return nil
}

// Close disposes the chart. Later events are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.disposeChart()
}

func (c *Controller) transition(s State) {
	c.state = s
	frame := Render(s)
	if frame.Content != nil && c.cfg.Chart != nil {
		c.disposeChart()
		c.chart = c.cfg.Chart.Create(frame.Content.Chart)
	}
	if c.cfg.Document != nil {
		c.cfg.Document.Apply(frame)
	}
}

func (c *Controller) disposeChart() {
	if c.chart != nil {
		c.chart.Dispose()
		c.chart = nil
	}
}
