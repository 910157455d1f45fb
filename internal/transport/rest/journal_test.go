package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagarden/backend/internal/domain"
	"github.com/ideagarden/backend/internal/service/journal"
)

type journalServiceMock struct {
	SubmitFunc func(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error)
	ListFunc   func(ctx context.Context, input journal.ListInput) ([]*domain.Entry, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
	MergeFunc  func(ctx context.Context, input journal.MergeInput) (*journal.MergeResult, error)
}

func (m *journalServiceMock) Submit(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error) {
	return m.SubmitFunc(ctx, input)
}
func (m *journalServiceMock) List(ctx context.Context, input journal.ListInput) ([]*domain.Entry, error) {
	return m.ListFunc(ctx, input)
}
func (m *journalServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	return m.GetFunc(ctx, id)
}
func (m *journalServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *journalServiceMock) Merge(ctx context.Context, input journal.MergeInput) (*journal.MergeResult, error) {
	return m.MergeFunc(ctx, input)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func journalRouter(svc journalService) http.Handler {
	h := NewJournalHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/api/submit", h.Submit)
	r.Get("/api/entries", h.List)
	r.Post("/api/entries/merge", h.Merge)
	r.Get("/api/entries/{id}", h.Get)
	r.Delete("/api/entries/{id}", h.Delete)
	return r
}

func TestJournalHandler_Submit(t *testing.T) {
	svc := &journalServiceMock{
		SubmitFunc: func(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error) {
			assert.Equal(t, "my voice memo", input.Transcription)
			return &domain.Entry{ID: uuid.New(), DayNumber: 1, Title: "T", Ideas: []domain.Idea{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submit",
		strings.NewReader(`{"transcription":"my voice memo"}`))
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"day_number":1`)
	assert.Contains(t, rec.Body.String(), `"ideas":[]`)
}

func TestJournalHandler_Submit_EmptyTranscription(t *testing.T) {
	svc := &journalServiceMock{
		SubmitFunc: func(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error) {
			return nil, domain.NewValidationError("transcription", "required")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalHandler_Submit_ExtractionFailure(t *testing.T) {
	svc := &journalServiceMock{
		SubmitFunc: func(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error) {
			return nil, domain.ErrExtractionFailed
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submit",
		strings.NewReader(`{"transcription":"text"}`))
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "idea extraction failed")
}

func TestJournalHandler_Submit_ExplicitDate(t *testing.T) {
	svc := &journalServiceMock{
		SubmitFunc: func(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error) {
			require.NotNil(t, input.Date)
			assert.Equal(t, "2026-08-15", input.Date.Format("2006-01-02"))
			return &domain.Entry{ID: uuid.New(), DayNumber: 3, Ideas: []domain.Idea{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submit",
		strings.NewReader(`{"transcription":"backdated","date":"2026-08-15"}`))
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestJournalHandler_Submit_InvalidDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/submit",
		strings.NewReader(`{"transcription":"text","date":"15/08/2026"}`))
	rec := httptest.NewRecorder()
	journalRouter(&journalServiceMock{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalHandler_Submit_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	journalRouter(&journalServiceMock{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalHandler_List_PassesFilters(t *testing.T) {
	svc := &journalServiceMock{
		ListFunc: func(ctx context.Context, input journal.ListInput) ([]*domain.Entry, error) {
			require.NotNil(t, input.Category)
			assert.Equal(t, "product", *input.Category)
			require.NotNil(t, input.Search)
			assert.Equal(t, "launch", *input.Search)
			assert.Nil(t, input.Tag)
			return []*domain.Entry{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/entries?category=product&search=launch", nil)
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestJournalHandler_Get_NotFound(t *testing.T) {
	svc := &journalServiceMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
			return nil, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJournalHandler_Get_BadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/entries/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	journalRouter(&journalServiceMock{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalHandler_Delete(t *testing.T) {
	id := uuid.New()
	svc := &journalServiceMock{
		DeleteFunc: func(ctx context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/entries/"+id.String(), nil)
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestJournalHandler_Merge(t *testing.T) {
	target := uuid.New()
	source := uuid.New()
	svc := &journalServiceMock{
		MergeFunc: func(ctx context.Context, input journal.MergeInput) (*journal.MergeResult, error) {
			assert.Equal(t, target, input.TargetID)
			assert.Equal(t, source, input.SourceID)
			return &journal.MergeResult{MergedInto: target.String(), MovedIdeas: 2}, nil
		},
	}

	body := `{"targetId":"` + target.String() + `","sourceId":"` + source.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/entries/merge", strings.NewReader(body))
	rec := httptest.NewRecorder()
	journalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"movedIdeas":2`)
}

func TestJournalHandler_Merge_InvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/entries/merge",
		strings.NewReader(`{"targetId":"nope","sourceId":"nope"}`))
	rec := httptest.NewRecorder()
	journalRouter(&journalServiceMock{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
