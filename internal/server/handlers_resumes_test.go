package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffynunes09/create-resume/internal/export"
	"github.com/jeffynunes09/create-resume/internal/preview"
	"github.com/jeffynunes09/create-resume/internal/server/middleware"
	"github.com/jeffynunes09/create-resume/internal/types"
)

// fakeStore is an in-memory ResumeStore for handler tests.
type fakeStore struct {
	resumes map[uuid.UUID]*types.Resume
	owners  map[uuid.UUID]uuid.UUID
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resumes: make(map[uuid.UUID]*types.Resume),
		owners:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeStore) CreateResume(_ context.Context, userID uuid.UUID, input types.ResumeInput) (*types.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now()
	r := &types.Resume{
		ID:           uuid.New(),
		PersonalInfo: input.PersonalInfo,
		Summary:      input.Summary,
		Experiences:  input.Experiences,
		Education:    input.Education,
		Skills:       input.Skills,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.resumes[r.ID] = r
	f.owners[r.ID] = userID
	return r, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]*types.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Resume
	for id, r := range f.resumes {
		if f.owners[id] == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetResume(_ context.Context, userID, resumeID uuid.UUID) (*types.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.owners[resumeID] != userID {
		return nil, nil
	}
	return f.resumes[resumeID], nil
}

func (f *fakeStore) UpdateResume(_ context.Context, userID, resumeID uuid.UUID, input types.ResumeInput) (*types.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.resumes[resumeID]
	if !ok || f.owners[resumeID] != userID {
		return nil, nil
	}
	r.PersonalInfo = input.PersonalInfo
	r.Summary = input.Summary
	r.Experiences = input.Experiences
	r.Education = input.Education
	r.Skills = input.Skills
	r.UpdatedAt = time.Now()
	return r, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, userID, resumeID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.owners[resumeID] != userID {
		return false, nil
	}
	delete(f.resumes, resumeID)
	delete(f.owners, resumeID)
	return true, nil
}

type fakeRaster struct{}

func (fakeRaster) RenderPDF(_ context.Context, _ preview.Document, _ preview.Style) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeFlow struct{}

func (fakeFlow) RenderDOCX(_ preview.Document, _ preview.Style) ([]byte, error) {
	return []byte("PK-fake"), nil
}

func testServer(store ResumeStore) *Server {
	return &Server{
		store:    store,
		exporter: export.New(fakeRaster{}, fakeFlow{}),
	}
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

const validResumeBody = `{
	"personalInfo": {"fullName": "Ana Souza", "email": "ana@example.com"},
	"summary": "Resumo.",
	"experiences": [{"id": "e1", "company": "Acme", "position": "Dev", "startDate": "2021-01", "current": true, "highlights": ["x"]}],
	"education": [],
	"skills": [{"id": "s1", "name": "Go", "level": "advanced"}]
}`

func TestHandleCreateResume(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	userID := uuid.New()

	req := authedRequest("POST", "/resumes", validResumeBody, userID)
	rec := httptest.NewRecorder()
	s.handleCreateResume(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Ana Souza", got.PersonalInfo.FullName)
	require.Len(t, got.Experiences, 1)
	assert.Len(t, store.resumes, 1)
}

func TestHandleCreateResume_SchemaRejectsShape(t *testing.T) {
	s := testServer(newFakeStore())

	// personalInfo missing entirely
	req := authedRequest("POST", "/resumes", `{"summary": "x"}`, uuid.New())
	rec := httptest.NewRecorder()
	s.handleCreateResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "personalInfo")
}

func TestHandleCreateResume_ValidatorRejectsEmail(t *testing.T) {
	s := testServer(newFakeStore())

	body := `{"personalInfo": {"fullName": "Ana", "email": "not-an-email"}}`
	req := authedRequest("POST", "/resumes", body, uuid.New())
	rec := httptest.NewRecorder()
	s.handleCreateResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetResume_OwnershipScoped(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	owner := uuid.New()
	created, err := store.CreateResume(context.Background(), owner, types.ResumeInput{
		PersonalInfo: types.PersonalInfo{FullName: "Ana", Email: "a@b.c"},
	})
	require.NoError(t, err)

	// Owner sees it
	req := authedRequest("GET", "/resumes/"+created.ID.String(), "", owner)
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	s.handleGetResume(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another user gets a 404, not a 403
	req = authedRequest("GET", "/resumes/"+created.ID.String(), "", uuid.New())
	req.SetPathValue("id", created.ID.String())
	rec = httptest.NewRecorder()
	s.handleGetResume(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetResume_InvalidID(t *testing.T) {
	s := testServer(newFakeStore())

	req := authedRequest("GET", "/resumes/not-a-uuid", "", uuid.New())
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	s.handleGetResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdateResume_ReplacesContent(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	owner := uuid.New()
	created, err := store.CreateResume(context.Background(), owner, types.ResumeInput{
		PersonalInfo: types.PersonalInfo{FullName: "Ana", Email: "a@b.c"},
		Skills:       []types.Skill{{ID: "old", Name: "Perl"}},
	})
	require.NoError(t, err)

	req := authedRequest("PUT", "/resumes/"+created.ID.String(), validResumeBody, owner)
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	s.handleUpdateResume(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Skills, 1)
	assert.Equal(t, "Go", got.Skills[0].Name, "old collection fully replaced")
}

func TestHandleUpdateResume_NotFound(t *testing.T) {
	s := testServer(newFakeStore())
	missing := uuid.New()

	req := authedRequest("PUT", "/resumes/"+missing.String(), validResumeBody, uuid.New())
	req.SetPathValue("id", missing.String())
	rec := httptest.NewRecorder()
	s.handleUpdateResume(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeleteResume(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	owner := uuid.New()
	created, err := store.CreateResume(context.Background(), owner, types.ResumeInput{
		PersonalInfo: types.PersonalInfo{FullName: "Ana", Email: "a@b.c"},
	})
	require.NoError(t, err)

	req := authedRequest("DELETE", "/resumes/"+created.ID.String(), "", owner)
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	s.handleDeleteResume(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.resumes)

	// Deleting again is a 404
	req = authedRequest("DELETE", "/resumes/"+created.ID.String(), "", owner)
	req.SetPathValue("id", created.ID.String())
	rec = httptest.NewRecorder()
	s.handleDeleteResume(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListResumes_EmptyIsArray(t *testing.T) {
	s := testServer(newFakeStore())

	req := authedRequest("GET", "/resumes", "", uuid.New())
	rec := httptest.NewRecorder()
	s.handleListResumes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHandleListResumes_StoreError(t *testing.T) {
	store := newFakeStore()
	store.err = fmt.Errorf("connection refused")
	s := testServer(store)

	req := authedRequest("GET", "/resumes", "", uuid.New())
	rec := httptest.NewRecorder()
	s.handleListResumes(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
