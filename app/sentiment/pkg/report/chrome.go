package report

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
)

// ChromePrinter prints PDFs with headless Chrome over CDP.
type ChromePrinter struct {
	remoteURL string
	timeout   time.Duration
}

// NewChromePrinter creates a printer. An empty remoteURL launches a local
// headless Chrome for every job; otherwise the CDP endpoint is used.
func NewChromePrinter(remoteURL string, timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromePrinter{remoteURL: remoteURL, timeout: timeout}
}

func (p *ChromePrinter) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, p.remoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}

// PrintPDF implements Printer.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	allocCtx, allocCancel := p.allocator(ctx)
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}

	logger.Log.Debugf("printed %d byte pdf in %s", len(pdf), time.Since(start))
	return pdf, nil
}
