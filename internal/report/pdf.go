package report

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/m-mizutani/goerr/v2"
)

// Renderer prints an HTML document to PDF.
type Renderer interface {
	Render(ctx context.Context, htmlDoc string) ([]byte, error)
}

const footerTemplate = `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// ChromePDFRenderer prints through a headless Chrome, one browser per call.
type ChromePDFRenderer struct {
	chromePath string
	timeout    time.Duration
}

// NewChromePDFRenderer uses chromePath, or a well-known install location when
// empty. If none is found chromedp falls back to its own lookup.
func NewChromePDFRenderer(chromePath string) *ChromePDFRenderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromePDFRenderer{chromePath: chromePath, timeout: 30 * time.Second}
}

func (r *ChromePDFRenderer) Render(ctx context.Context, htmlDoc string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footerTemplate).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.6).
				WithMarginBottom(0.75).
				WithMarginLeft(0.5).
				WithMarginRight(0.5).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "chrome print to PDF failed", goerr.V("chrome_path", r.chromePath))
	}
	return pdf, nil
}

func detectChromePath() string {
	for _, p := range []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Export renders r to PDF bytes.
func Export(ctx context.Context, renderer Renderer, r Report) ([]byte, error) {
	doc, err := HTML(Markdown(r))
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, doc)
}
