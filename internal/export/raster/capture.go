package raster

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jeffynunes09/create-resume/internal/export"
)

// UpscaleFactor is the device scale applied when rasterizing the preview.
// Capturing at 2x keeps text crisp once the image is scaled to page width.
const UpscaleFactor = 2.0

// viewportWidth is the CSS pixel width the preview is laid out at for
// capture: 210mm at 96dpi, so one CSS pixel maps cleanly to the page.
const viewportWidth = 794

// LinkRegion is a measured hyperlink bounding box in CSS pixels relative
// to the preview container.
type LinkRegion struct {
	Href string  `json:"href"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// Snapshot is the result of a capture session: the 2x PNG of the preview
// and the geometry needed to rebuild link regions in page coordinates.
type Snapshot struct {
	PNG            []byte
	ContainerWidth float64
	Links          []LinkRegion
}

// measurement mirrors the object returned by the in-page measuring script.
type measurement struct {
	Width float64      `json:"width"`
	Links []LinkRegion `json:"links"`
}

// measureScript collects the preview container width and the bounding box
// of every anchor, relative to the container. Geometry must come from the
// same live layout that was rasterized; re-deriving positions from the
// document model would not survive font or wrap differences.
const measureScript = `(() => {
	const root = document.getElementById('resume-preview');
	const rect = root.getBoundingClientRect();
	const links = [];
	root.querySelectorAll('a[href]').forEach((el) => {
		const r = el.getBoundingClientRect();
		links.push({
			href: el.getAttribute('href'),
			x: r.left - rect.left,
			y: r.top - rect.top,
			w: r.width,
			h: r.height,
		});
	});
	return {width: rect.width, links: links};
})()`

// Capturer drives a headless browser session over the rendered preview.
// Requires Chrome/Chromium on the system (CHROME_PATH overrides lookup).
type Capturer struct {
	Timeout time.Duration
	Verbose bool
}

// NewCapturer creates a capturer with the default timeout.
func NewCapturer() *Capturer {
	return &Capturer{Timeout: 60 * time.Second}
}

// Capture renders the preview HTML in a headless browser, takes a full
// screenshot at the upscale factor against the page's opaque white
// background, and measures every anchor's bounding box.
func (c *Capturer) Capture(ctx context.Context, html string) (*Snapshot, error) {
	if c.Verbose {
		log.Printf("[BROWSER] Starting headless capture: %d bytes of HTML", len(html))
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	// The browser loads the markup from disk so relative resources and
	// file URLs behave the same way the live preview does.
	tmpDir, err := os.MkdirTemp("", "resume-capture-")
	if err != nil {
		return nil, &export.CaptureError{Message: "failed to create capture dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "preview.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &export.CaptureError{Message: "failed to write preview HTML", Cause: err}
	}

	var shot []byte
	var m measurement
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(viewportWidth, 1123, chromedp.EmulateScale(UpscaleFactor)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&shot, 100),
		chromedp.Evaluate(measureScript, &m),
	)
	if err != nil {
		return nil, &export.CaptureError{Message: "browser session failed", Cause: err}
	}
	if len(shot) == 0 {
		return nil, &export.CaptureError{Message: "empty screenshot"}
	}
	if m.Width <= 0 {
		return nil, &export.CaptureError{Message: "preview container not found"}
	}

	if c.Verbose {
		log.Printf("[BROWSER] Captured %d bytes, container width %.0fpx, %d anchors",
			len(shot), m.Width, len(m.Links))
	}

	return &Snapshot{PNG: shot, ContainerWidth: m.Width, Links: m.Links}, nil
}
