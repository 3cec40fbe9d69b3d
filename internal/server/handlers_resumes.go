// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jeffynunes09/create-resume/internal/schemas"
	"github.com/jeffynunes09/create-resume/internal/server/middleware"
	"github.com/jeffynunes09/create-resume/internal/types"
)

// ResumeStore is the slice of the storage layer the resume handlers
// depend on. Tests substitute an in-memory implementation.
type ResumeStore interface {
	CreateResume(ctx context.Context, userID uuid.UUID, input types.ResumeInput) (*types.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]*types.Resume, error)
	GetResume(ctx context.Context, userID, resumeID uuid.UUID) (*types.Resume, error)
	UpdateResume(ctx context.Context, userID, resumeID uuid.UUID, input types.ResumeInput) (*types.Resume, error)
	DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) (bool, error)
}

// handleListResumes returns the authenticated user's resumes, most
// recently updated first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if resumes == nil {
		resumes = []*types.Resume{}
	}

	s.jsonResponse(w, http.StatusOK, resumes)
}

// handleCreateResume stores a new resume for the authenticated user.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	input, ok := s.decodeResumeInput(w, r)
	if !ok {
		return
	}

	resume, err := s.store.CreateResume(r.Context(), userID, input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleGetResume returns one resume with all child collections in
// stored order.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, resumeID, ok := s.resumeRequest(w, r)
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), userID, resumeID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if resume == nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume replaces the content of an existing resume. The
// payload's collection order becomes the stored order.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, resumeID, ok := s.resumeRequest(w, r)
	if !ok {
		return
	}

	input, decoded := s.decodeResumeInput(w, r)
	if !decoded {
		return
	}

	resume, err := s.store.UpdateResume(r.Context(), userID, resumeID, input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if resume == nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume removes a resume and all its children.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, resumeID, ok := s.resumeRequest(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), userID, resumeID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !deleted {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
}

// resumeRequest extracts the authenticated user and the {id} path value.
func (s *Server) resumeRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, resumeID, true
}

// decodeResumeInput reads and validates a resume payload. The raw body is
// checked against the JSON schema first so shape errors carry field
// paths; the struct validator then enforces the submit-time rules.
func (s *Server) decodeResumeInput(w http.ResponseWriter, r *http.Request) (types.ResumeInput, bool) {
	var input types.ResumeInput

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return input, false
	}

	if err := schemas.ValidateResumePayload(body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return input, false
	}

	if err := json.Unmarshal(body, &input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return input, false
	}

	if err := input.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return input, false
	}

	return input, true
}
