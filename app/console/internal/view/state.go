// Package view holds the sentiment view controller: the request lifecycle,
// the pure state-to-frame renderer and the export trigger. It knows nothing
// about the terminal; adapters supply the Document, ChartWidget and Navigator.
package view

import "github.com/iWorld-y/ipo_radar/app/console/internal/api"

// Phase is the lifecycle phase of the view.
type Phase int

const (
	Idle Phase = iota
	Loading
	Failed
	Succeeded
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case Succeeded:
		return "success"
	default:
		return "unknown"
	}
}

// State is exactly one of Idle, Loading, Error(message) or Success(result).
type State struct {
	Phase   Phase
	Message string
	Result  *api.Result
}

func IdleState() State    { return State{Phase: Idle} }
func LoadingState() State { return State{Phase: Loading} }

func ErrorState(msg string) State {
	return State{Phase: Failed, Message: msg}
}

func SuccessState(res *api.Result) State {
	return State{Phase: Succeeded, Result: res}
}

// User-facing messages.
const (
	MsgEmptyInput      = "Please enter an IPO/Company name."
	MsgFetchFailed     = "An error occurred while fetching data."
	MsgExportFirst     = "Please perform a sentiment analysis first to download PDF."
	NotAvailable       = "N/A"
	NoHighlights       = "No specific highlights found."
	NoSnippets         = "No snippets available."
	SourceNotAvailable = "Source: N/A"
)
