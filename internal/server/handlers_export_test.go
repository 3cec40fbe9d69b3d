package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffynunes09/create-resume/internal/export"
	"github.com/jeffynunes09/create-resume/internal/preview"
	"github.com/jeffynunes09/create-resume/internal/types"
)

type failingRaster struct{}

func (failingRaster) RenderPDF(_ context.Context, _ preview.Document, _ preview.Style) ([]byte, error) {
	return nil, &export.CaptureError{Message: "browser exploded"}
}

func seedResume(t *testing.T, store *fakeStore, owner uuid.UUID) *types.Resume {
	t.Helper()
	created, err := store.CreateResume(context.Background(), owner, types.ResumeInput{
		PersonalInfo: types.PersonalInfo{FullName: "Ana Souza", Email: "a@b.c"},
	})
	require.NoError(t, err)
	return created
}

func exportRequest(target string, resumeID, userID uuid.UUID) *http.Request {
	req := authedRequest("GET", target, "", userID)
	req.SetPathValue("id", resumeID.String())
	return req
}

func TestHandleExportPDF(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	owner := uuid.New()
	created := seedResume(t, store, owner)

	req := exportRequest("/resumes/"+created.ID.String()+"/export/pdf", created.ID, owner)
	rec := httptest.NewRecorder()
	s.handleExportPDF(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Ana Souza.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-fake", rec.Body.String())
}

func TestHandleExportDOCX(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	owner := uuid.New()
	created := seedResume(t, store, owner)

	req := exportRequest("/resumes/"+created.ID.String()+"/export/docx", created.ID, owner)
	rec := httptest.NewRecorder()
	s.handleExportDOCX(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "wordprocessingml")
	assert.Equal(t, `attachment; filename="Ana Souza.docx"`, rec.Header().Get("Content-Disposition"))
}

func TestHandleExportPDF_FailureHidesDetail(t *testing.T) {
	store := newFakeStore()
	s := &Server{
		store:    store,
		exporter: export.New(failingRaster{}, fakeFlow{}),
	}
	owner := uuid.New()
	created := seedResume(t, store, owner)

	req := exportRequest("/resumes/"+created.ID.String()+"/export/pdf", created.ID, owner)
	rec := httptest.NewRecorder()
	s.handleExportPDF(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Export failed")
	assert.NotContains(t, rec.Body.String(), "browser exploded")
}

func TestHandleExport_NotFound(t *testing.T) {
	s := testServer(newFakeStore())
	missing := uuid.New()

	req := exportRequest("/resumes/"+missing.String()+"/export/pdf", missing, uuid.New())
	rec := httptest.NewRecorder()
	s.handleExportPDF(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePreview(t *testing.T) {
	store := newFakeStore()
	s := testServer(store)
	owner := uuid.New()
	created := seedResume(t, store, owner)

	req := exportRequest("/resumes/"+created.ID.String()+"/preview", created.ID, owner)
	rec := httptest.NewRecorder()
	s.handlePreview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Ana Souza")
	assert.Contains(t, rec.Body.String(), `id="resume-preview"`)
}

func TestStyleFromQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/resumes/x/preview?font=Georgia&size=18&color=1a202c", nil)
	style := styleFromQuery(req)

	assert.Equal(t, "Georgia", style.FontFamily)
	assert.Equal(t, 18, style.FontSize)
	assert.Equal(t, "#1a202c", style.TextColor)

	// Out-of-range size falls back to the default
	req = httptest.NewRequest("GET", "/x?size=400", nil)
	assert.Equal(t, preview.DefaultStyle().FontSize, styleFromQuery(req).FontSize)

	// No params: defaults
	req = httptest.NewRequest("GET", "/x", nil)
	assert.Equal(t, preview.DefaultStyle(), styleFromQuery(req))
}
