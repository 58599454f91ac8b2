package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// A4 in inches, with the CV template's page margins (18mm sides, 10mm
// top and bottom).
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginSideIn  = 18.0 / 25.4
	marginVertIn  = 10.0 / 25.4
)

// ChromedpRenderer prints HTML to PDF through a headless Chrome instance.
// Chrome's print engine provides the automatic reflow and pagination; no
// page-break arithmetic happens on this side.
type ChromedpRenderer struct {
	chromePath string
	timeout    time.Duration
}

func NewChromedpRenderer(chromePath string, timeout time.Duration) *ChromedpRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{chromePath: chromePath, timeout: timeout}
}

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	rctx, cancelTimeout := context.WithTimeout(cctx, r.timeout)
	defer cancelTimeout()

	// Serve the document from a throwaway file so Chrome loads it with a
	// plain file:// navigation. The HTML is self-contained (inlined CSS,
	// data-URI images), so nothing else needs to be staged.
	tmpDir, err := os.MkdirTemp("", "cv-"+uuid.New().String())
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(rctx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginLeft(marginSideIn).
				WithMarginRight(marginSideIn).
				WithMarginTop(marginVertIn).
				WithMarginBottom(marginVertIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
