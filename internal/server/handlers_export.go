// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jeffynunes09/create-resume/internal/preview"
	"github.com/jeffynunes09/create-resume/internal/types"
)

// handlePreview renders the resume as standalone HTML, the same markup
// the raster exporter captures.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}

	doc := preview.Project(resume.Input())
	html, err := preview.Render(doc, styleFromQuery(r))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleExportPDF runs the raster export pipeline and streams the PDF as
// an attachment. A 409 means another export is still in flight.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}

	data, filename, err := s.exporter.PDF(r.Context(), resume.Input(), styleFromQuery(r))
	if err != nil {
		s.exportError(w, err)
		return
	}

	s.attachment(w, filename, "application/pdf", data)
}

// handleExportDOCX runs the flow-document export pipeline.
func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}

	data, filename, err := s.exporter.DOCX(r.Context(), resume.Input(), styleFromQuery(r))
	if err != nil {
		s.exportError(w, err)
		return
	}

	s.attachment(w, filename,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}

// loadResume fetches the resume addressed by the request for the
// authenticated user.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (*types.Resume, bool) {
	userID, resumeID, ok := s.resumeRequest(w, r)
	if !ok {
		return nil, false
	}

	resume, err := s.store.GetResume(r.Context(), userID, resumeID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	if resume == nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}

	return resume, true
}

// exportError maps export failures to responses. Pipeline failures hide
// the internal detail behind a generic notice; the busy error surfaces
// as a conflict so the client can retry.
func (s *Server) exportError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[export] pipeline failed: %v", err)
		s.errorResponse(w, status, "Export failed. Please try again.")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// attachment writes the export artifact as a file download.
func (s *Server) attachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// styleFromQuery builds the presentation style from optional query
// parameters, falling back to the defaults.
func styleFromQuery(r *http.Request) preview.Style {
	style := preview.DefaultStyle()

	if font := r.URL.Query().Get("font"); font != "" {
		style.FontFamily = font
	}
	if size := r.URL.Query().Get("size"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n >= 8 && n <= 32 {
			style.FontSize = n
		}
	}
	if color := r.URL.Query().Get("color"); color != "" {
		if !strings.HasPrefix(color, "#") {
			color = "#" + color
		}
		style.TextColor = color
	}

	return style
}
