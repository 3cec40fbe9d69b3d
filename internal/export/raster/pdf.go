package raster

import (
	"bytes"
	"context"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/jeffynunes09/create-resume/internal/export"
	"github.com/jeffynunes09/create-resume/internal/preview"
)

// PageWidthMM is the A4 page width the raster is scaled to.
const PageWidthMM = 210.0

// Renderer is the raster/PDF pipeline: render preview HTML, capture it in
// a headless browser, compose the capture into a single A4 page with
// reconstructed link regions.
type Renderer struct {
	capturer *Capturer
}

// NewRenderer creates the pipeline with a default capturer.
func NewRenderer() *Renderer {
	return &Renderer{capturer: NewCapturer()}
}

// NewRendererWith uses the given capturer (for timeouts or verbosity).
func NewRendererWith(c *Capturer) *Renderer {
	return &Renderer{capturer: c}
}

// RenderPDF implements the raster export. The typical resume fits one
// page; taller captures are scaled to page width and overflow below the
// page, a known limitation of the raster path.
func (r *Renderer) RenderPDF(ctx context.Context, doc preview.Document, style preview.Style) ([]byte, error) {
	html, err := preview.Render(doc, style)
	if err != nil {
		return nil, &export.CaptureError{Message: "failed to render preview", Cause: err}
	}

	snap, err := r.capturer.Capture(ctx, html)
	if err != nil {
		return nil, err
	}

	// Rasterization destroys interactivity, so link regions are rebuilt
	// from the measured layout. The scan pins down which anchors qualify
	// (mailto plus the social allow-list); everything else is dropped.
	allowed, err := ScanLinks(html)
	if err != nil {
		return nil, &export.ComposeError{Format: "pdf", Message: "failed to scan preview links", Cause: err}
	}
	var links []LinkRegion
	for _, l := range snap.Links {
		if allowed[l.Href] {
			links = append(links, l)
		}
	}

	return ComposePDF(snap.PNG, snap.ContainerWidth, links)
}

// ComposePDF places the capture full-bleed on an A4 page and registers an
// invisible clickable region for every reconstructed link. Region
// coordinates are scaled by pageWidth/containerWidth, mirroring how the
// image itself is scaled.
func ComposePDF(shot []byte, containerWidth float64, links []LinkRegion) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return nil, &export.ComposeError{Format: "pdf", Message: "invalid capture image", Cause: err}
	}
	if cfg.Width == 0 || containerWidth <= 0 {
		return nil, &export.ComposeError{Format: "pdf", Message: "degenerate capture geometry"}
	}

	imgHeight := float64(cfg.Height) * PageWidthMM / float64(cfg.Width)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("preview", opt, bytes.NewReader(shot))
	pdf.ImageOptions("preview", 0, 0, PageWidthMM, imgHeight, false, opt, 0, "")

	scale := PageWidthMM / containerWidth
	for _, l := range links {
		pdf.LinkString(l.X*scale, l.Y*scale, l.W*scale, l.H*scale, l.Href)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &export.ComposeError{Format: "pdf", Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}
