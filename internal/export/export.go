// Package export coordinates the two export pipelines: the raster PDF
// path and the flow-document DOCX path. It owns the busy/pending state
// that keeps exports single-flight and derives output filenames.
package export

import (
	"context"
	"strings"
	"sync"

	"github.com/jeffynunes09/create-resume/internal/preview"
	"github.com/jeffynunes09/create-resume/internal/types"
)

// DefaultBaseName is the filename used when the resume has no full name.
const DefaultBaseName = "curriculo"

// RasterRenderer captures a rendered preview and composes it into a
// paginated PDF with reconstructed link regions.
type RasterRenderer interface {
	RenderPDF(ctx context.Context, doc preview.Document, style preview.Style) ([]byte, error)
}

// FlowRenderer serializes the projection into a flow document.
type FlowRenderer interface {
	RenderDOCX(doc preview.Document, style preview.Style) ([]byte, error)
}

// Exporter runs exports one at a time. A trigger while another export is
// in flight fails fast with ErrExportInProgress; the busy state always
// resets when the running export settles, success or failure.
type Exporter struct {
	raster RasterRenderer
	flow   FlowRenderer

	mu   sync.Mutex
	busy bool
}

// New creates an exporter over the two pipeline implementations.
func New(raster RasterRenderer, flow FlowRenderer) *Exporter {
	return &Exporter{raster: raster, flow: flow}
}

// Busy reports whether an export is currently in flight.
func (e *Exporter) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *Exporter) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return &ErrExportInProgress{}
	}
	e.busy = true
	return nil
}

func (e *Exporter) settle() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

// PDF exports the resume through the raster pipeline. On failure no
// partial artifact is returned and the exporter goes back to idle.
func (e *Exporter) PDF(ctx context.Context, in types.ResumeInput, style preview.Style) ([]byte, string, error) {
	if err := e.begin(); err != nil {
		return nil, "", err
	}
	defer e.settle()

	doc := preview.Project(in)
	data, err := e.raster.RenderPDF(ctx, doc, style)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(in.PersonalInfo.FullName, "pdf"), nil
}

// DOCX exports the resume through the flow-document pipeline, built from
// the model projection rather than the rendered preview.
func (e *Exporter) DOCX(_ context.Context, in types.ResumeInput, style preview.Style) ([]byte, string, error) {
	if err := e.begin(); err != nil {
		return nil, "", err
	}
	defer e.settle()

	doc := preview.Project(in)
	data, err := e.flow.RenderDOCX(doc, style)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(in.PersonalInfo.FullName, "docx"), nil
}

// Filename derives the download name from the person's full name,
// falling back to a generic default when empty. Path separators and
// control characters are stripped so the name is safe as an attachment.
func Filename(fullName, ext string) string {
	base := strings.TrimSpace(fullName)
	base = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"':
			return -1
		case r < 0x20:
			return -1
		}
		return r
	}, base)
	if base == "" {
		base = DefaultBaseName
	}
	return base + "." + ext
}
