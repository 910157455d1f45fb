package journal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagarden/backend/internal/adapter/postgres/entry"
	"github.com/ideagarden/backend/internal/domain"
)

type entryRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListFunc         func(ctx context.Context, filter entry.Filter) ([]*domain.Entry, error)
	MaxDayNumberFunc func(ctx context.Context) (int, error)
	CreateFunc       func(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	UpdateMergedFunc func(ctx context.Context, id uuid.UUID, rawTranscription, summary string, tags []string) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *entryRepoMock) List(ctx context.Context, filter entry.Filter) ([]*domain.Entry, error) {
	return m.ListFunc(ctx, filter)
}
func (m *entryRepoMock) MaxDayNumber(ctx context.Context) (int, error) {
	return m.MaxDayNumberFunc(ctx)
}
func (m *entryRepoMock) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	return m.CreateFunc(ctx, e)
}
func (m *entryRepoMock) UpdateMerged(ctx context.Context, id uuid.UUID, rawTranscription, summary string, tags []string) error {
	return m.UpdateMergedFunc(ctx, id, rawTranscription, summary, tags)
}
func (m *entryRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type ideaRepoMock struct {
	ListByEntryIDsFunc func(ctx context.Context, entryIDs []uuid.UUID) ([]*domain.Idea, error)
	CreateBatchFunc    func(ctx context.Context, ideas []*domain.Idea) ([]*domain.Idea, error)
	ReassignEntryFunc  func(ctx context.Context, fromEntry, toEntry uuid.UUID) (int, error)
}

func (m *ideaRepoMock) ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]*domain.Idea, error) {
	return m.ListByEntryIDsFunc(ctx, entryIDs)
}
func (m *ideaRepoMock) CreateBatch(ctx context.Context, ideas []*domain.Idea) ([]*domain.Idea, error) {
	return m.CreateBatchFunc(ctx, ideas)
}
func (m *ideaRepoMock) ReassignEntry(ctx context.Context, fromEntry, toEntry uuid.UUID) (int, error) {
	return m.ReassignEntryFunc(ctx, fromEntry, toEntry)
}

type extractorMock struct {
	result *domain.ExtractionResult
	err    error
}

func (m *extractorMock) ExtractIdeas(_ context.Context, _ string) (*domain.ExtractionResult, error) {
	return m.result, m.err
}

// passthroughTx runs the callback without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(entries entryRepo, ideas ideaRepo, ex extractor) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, entries, ideas, ex, passthroughTx{})
}

func TestService_Submit_NewDay(t *testing.T) {
	t.Parallel()

	extracted := &domain.ExtractionResult{
		Title:   "A new direction",
		Summary: "One theme.",
		Mood:    domain.MoodEnergized,
		Tags:    []string{"direction"},
		Ideas: []domain.ExtractedIdea{
			{Title: "Try it", Description: "d", Category: domain.CategoryProduct, Confidence: 0.5},
		},
	}

	entries := &entryRepoMock{
		MaxDayNumberFunc: func(ctx context.Context) (int, error) { return 41, nil },
		CreateFunc: func(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
			assert.Equal(t, 42, e.DayNumber)
			assert.Equal(t, "A new direction", e.Title)
			assert.Equal(t, domain.MoodEnergized, e.Mood)
			return e, nil
		},
	}
	ideas := &ideaRepoMock{
		CreateBatchFunc: func(ctx context.Context, batch []*domain.Idea) ([]*domain.Idea, error) {
			require.Len(t, batch, 1)
			assert.Equal(t, domain.StatusRaw, batch[0].Status)
			assert.NotNil(t, batch[0].ActionItems)
			return batch, nil
		},
	}

	svc := newTestService(entries, ideas, &extractorMock{result: extracted})
	got, err := svc.Submit(context.Background(), SubmitInput{Transcription: "today I thought about..."})

	require.NoError(t, err)
	assert.Equal(t, 42, got.DayNumber)
	assert.Len(t, got.Ideas, 1)
}

func TestService_Submit_SameDayCreatesNewEntry(t *testing.T) {
	t.Parallel()

	extracted := &domain.ExtractionResult{
		Title:   "Afternoon thoughts",
		Summary: "Second part.",
		Mood:    domain.MoodExcited,
		Tags:    []string{"b", "c"},
	}

	created := 0
	entries := &entryRepoMock{
		MaxDayNumberFunc: func(ctx context.Context) (int, error) { return 7, nil },
		CreateFunc: func(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
			created++
			assert.Equal(t, 8, e.DayNumber)
			assert.Equal(t, "afternoon thoughts", e.RawTranscription)
			return e, nil
		},
	}
	ideas := &ideaRepoMock{
		CreateBatchFunc: func(ctx context.Context, batch []*domain.Idea) ([]*domain.Idea, error) {
			return batch, nil
		},
	}

	svc := newTestService(entries, ideas, &extractorMock{result: extracted})
	got, err := svc.Submit(context.Background(), SubmitInput{Transcription: "afternoon thoughts"})

	require.NoError(t, err)
	require.Equal(t, 1, created, "every submission creates exactly one entry")
	assert.Equal(t, 8, got.DayNumber)
}

func TestService_Submit_ExplicitDate(t *testing.T) {
	t.Parallel()

	explicit := time.Date(2026, 8, 15, 17, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	entries := &entryRepoMock{
		MaxDayNumberFunc: func(ctx context.Context) (int, error) { return 0, nil },
		CreateFunc: func(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
			assert.Equal(t, want, e.Date)
			assert.Equal(t, 1, e.DayNumber)
			return e, nil
		},
	}
	ideas := &ideaRepoMock{
		CreateBatchFunc: func(ctx context.Context, batch []*domain.Idea) ([]*domain.Idea, error) {
			return batch, nil
		},
	}

	svc := newTestService(entries, ideas, &extractorMock{result: &domain.ExtractionResult{Mood: domain.MoodCalm}})
	_, err := svc.Submit(context.Background(), SubmitInput{Transcription: "backdated memo", Date: &explicit})

	require.NoError(t, err)
}

func TestService_Submit_EmptyTranscription(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil, nil)
	_, err := svc.Submit(context.Background(), SubmitInput{})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Submit_ExtractionFails(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil, &extractorMock{err: domain.ErrExtractionFailed})
	_, err := svc.Submit(context.Background(), SubmitInput{Transcription: "text"})

	require.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestService_Merge_Success(t *testing.T) {
	t.Parallel()

	target := &domain.Entry{
		ID:               uuid.New(),
		RawTranscription: "target text",
		Summary:          "Target summary.",
		Tags:             []string{"x"},
	}
	source := &domain.Entry{
		ID:               uuid.New(),
		RawTranscription: "source text",
		Summary:          "Source summary.",
		Tags:             []string{"x", "y"},
	}

	var deleted uuid.UUID
	entries := &entryRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
			if id == target.ID {
				return target, nil
			}
			return source, nil
		},
		UpdateMergedFunc: func(ctx context.Context, id uuid.UUID, raw, summary string, tags []string) error {
			assert.Equal(t, target.ID, id)
			assert.Equal(t, "target text\n\n---\n\nsource text", raw)
			assert.Equal(t, "Target summary. Source summary.", summary)
			assert.Equal(t, []string{"x", "y"}, tags)
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	ideas := &ideaRepoMock{
		ReassignEntryFunc: func(ctx context.Context, from, to uuid.UUID) (int, error) {
			assert.Equal(t, source.ID, from)
			assert.Equal(t, target.ID, to)
			return 3, nil
		},
	}

	svc := newTestService(entries, ideas, nil)
	result, err := svc.Merge(context.Background(), MergeInput{TargetID: target.ID, SourceID: source.ID})

	require.NoError(t, err)
	assert.Equal(t, target.ID.String(), result.MergedInto)
	assert.Equal(t, 3, result.MovedIdeas)
	assert.Equal(t, source.ID, deleted)
}

func TestService_Merge_SelfMerge(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := newTestService(nil, nil, nil)
	_, err := svc.Merge(context.Background(), MergeInput{TargetID: id, SourceID: id})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Merge_SourceMissing(t *testing.T) {
	t.Parallel()

	target := &domain.Entry{ID: uuid.New()}
	entries := &entryRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
			if id == target.ID {
				return target, nil
			}
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(entries, nil, nil)
	_, err := svc.Merge(context.Background(), MergeInput{TargetID: target.ID, SourceID: uuid.New()})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_List_AttachesIdeas(t *testing.T) {
	t.Parallel()

	e1 := &domain.Entry{ID: uuid.New()}
	e2 := &domain.Entry{ID: uuid.New()}

	entries := &entryRepoMock{
		ListFunc: func(ctx context.Context, filter entry.Filter) ([]*domain.Entry, error) {
			return []*domain.Entry{e1, e2}, nil
		},
	}
	ideas := &ideaRepoMock{
		ListByEntryIDsFunc: func(ctx context.Context, entryIDs []uuid.UUID) ([]*domain.Idea, error) {
			assert.ElementsMatch(t, []uuid.UUID{e1.ID, e2.ID}, entryIDs)
			return []*domain.Idea{
				{ID: uuid.New(), EntryID: e1.ID},
				{ID: uuid.New(), EntryID: e1.ID},
			}, nil
		},
	}

	svc := newTestService(entries, ideas, nil)
	got, err := svc.List(context.Background(), ListInput{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Ideas, 2)
	assert.NotNil(t, got[1].Ideas)
	assert.Empty(t, got[1].Ideas)
}

func TestService_List_InvalidCategory(t *testing.T) {
	t.Parallel()

	bad := "marketing"
	svc := newTestService(nil, nil, nil)
	_, err := svc.List(context.Background(), ListInput{Category: &bad})

	require.ErrorIs(t, err, domain.ErrValidation)
}
