package writing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagarden/backend/internal/adapter/llm"
	writingrepo "github.com/ideagarden/backend/internal/adapter/postgres/writing"
	"github.com/ideagarden/backend/internal/domain"
)

type writingRepoMock struct {
	GetByIdeaIDFunc   func(ctx context.Context, ideaID uuid.UUID) (*domain.IdeaWriting, error)
	CreateFunc        func(ctx context.Context, w *domain.IdeaWriting) (*domain.IdeaWriting, error)
	UpdateFunc        func(ctx context.Context, ideaID uuid.UUID, params writingrepo.UpdateParams) (*domain.IdeaWriting, error)
	SetFeedbackFunc   func(ctx context.Context, ideaID uuid.UUID, highlights []domain.Highlight, at time.Time) error
	PriorPagesFunc    func(ctx context.Context, excludeIdeaID uuid.UUID, limit int) ([]domain.Pages, error)
	ActiveIdeaIDsFunc func(ctx context.Context) ([]uuid.UUID, error)
}

func (m *writingRepoMock) GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (*domain.IdeaWriting, error) {
	return m.GetByIdeaIDFunc(ctx, ideaID)
}
func (m *writingRepoMock) Create(ctx context.Context, w *domain.IdeaWriting) (*domain.IdeaWriting, error) {
	return m.CreateFunc(ctx, w)
}
func (m *writingRepoMock) Update(ctx context.Context, ideaID uuid.UUID, params writingrepo.UpdateParams) (*domain.IdeaWriting, error) {
	return m.UpdateFunc(ctx, ideaID, params)
}
func (m *writingRepoMock) SetFeedback(ctx context.Context, ideaID uuid.UUID, highlights []domain.Highlight, at time.Time) error {
	return m.SetFeedbackFunc(ctx, ideaID, highlights, at)
}
func (m *writingRepoMock) PriorPages(ctx context.Context, excludeIdeaID uuid.UUID, limit int) ([]domain.Pages, error) {
	if m.PriorPagesFunc == nil {
		return nil, nil
	}
	return m.PriorPagesFunc(ctx, excludeIdeaID, limit)
}
func (m *writingRepoMock) ActiveIdeaIDs(ctx context.Context) ([]uuid.UUID, error) {
	return m.ActiveIdeaIDsFunc(ctx)
}

type ideaRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
}

func (m *ideaRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	return m.GetByIDFunc(ctx, id)
}

type conversationRepoMock struct {
	GetByIdeaIDFunc func(ctx context.Context, ideaID uuid.UUID) (*domain.WritingConversation, error)
	UpsertFunc      func(ctx context.Context, ideaID uuid.UUID, messages []domain.ChatMessage) error
}

func (m *conversationRepoMock) GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (*domain.WritingConversation, error) {
	return m.GetByIdeaIDFunc(ctx, ideaID)
}
func (m *conversationRepoMock) Upsert(ctx context.Context, ideaID uuid.UUID, messages []domain.ChatMessage) error {
	return m.UpsertFunc(ctx, ideaID, messages)
}

type assistantMock struct {
	WritingFeedbackFunc func(ctx context.Context, flatText string, idea domain.IdeaContext, priorSamples []string, summary string) ([]llm.RawHighlight, error)
	StreamChatFunc      func(ctx context.Context, messages []domain.ChatMessage, draft string, idea domain.IdeaContext, priorSamples []string, summary string, onDelta func(string)) (string, error)
}

func (m *assistantMock) WritingFeedback(ctx context.Context, flatText string, idea domain.IdeaContext, priorSamples []string, summary string) ([]llm.RawHighlight, error) {
	return m.WritingFeedbackFunc(ctx, flatText, idea, priorSamples, summary)
}
func (m *assistantMock) StreamChat(ctx context.Context, messages []domain.ChatMessage, draft string, idea domain.IdeaContext, priorSamples []string, summary string, onDelta func(string)) (string, error) {
	return m.StreamChatFunc(ctx, messages, draft, idea, priorSamples, summary, onDelta)
}

type uploaderMock struct {
	UploadFunc func(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

func (m *uploaderMock) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	return m.UploadFunc(ctx, key, contentType, body)
}

func existingIdea(id uuid.UUID) *ideaRepoMock {
	return &ideaRepoMock{
		GetByIDFunc: func(ctx context.Context, got uuid.UUID) (*domain.Idea, error) {
			if got != id {
				return nil, domain.ErrNotFound
			}
			return &domain.Idea{ID: id, Title: "Idea", Description: "Desc"}, nil
		},
	}
}

func newTestService(ws writingRepo, ideas ideaRepo, convos conversationRepo, ai assistant, up uploader) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, ws, ideas, convos, ai, up)
}

func TestService_GetWorkspace_CreatesOnFirstAccess(t *testing.T) {
	t.Parallel()

	ideaID := uuid.New()
	ws := &writingRepoMock{
		GetByIdeaIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IdeaWriting, error) {
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, w *domain.IdeaWriting) (*domain.IdeaWriting, error) {
			assert.Equal(t, ideaID, w.IdeaID)
			assert.Equal(t, domain.PageSummary, w.ActivePage)
			assert.NotNil(t, w.Highlights)
			return w, nil
		},
	}

	svc := newTestService(ws, existingIdea(ideaID), nil, nil, nil)
	got, err := svc.GetWorkspace(context.Background(), ideaID)

	require.NoError(t, err)
	assert.Equal(t, ideaID, got.IdeaID)
}

func TestService_GetWorkspace_IdeaMissing(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, existingIdea(uuid.New()), nil, nil, nil)
	_, err := svc.GetWorkspace(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_GetWorkspace_CreateRaceFallsBackToGet(t *testing.T) {
	t.Parallel()

	ideaID := uuid.New()
	calls := 0
	winner := &domain.IdeaWriting{ID: uuid.New(), IdeaID: ideaID}
	ws := &writingRepoMock{
		GetByIdeaIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IdeaWriting, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrNotFound
			}
			return winner, nil
		},
		CreateFunc: func(ctx context.Context, w *domain.IdeaWriting) (*domain.IdeaWriting, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := newTestService(ws, existingIdea(ideaID), nil, nil, nil)
	got, err := svc.GetWorkspace(context.Background(), ideaID)

	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}

func TestService_UpdateWorkspace_NoFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil, nil, nil, nil)
	_, err := svc.UpdateWorkspace(context.Background(), uuid.New(), UpdateWorkspaceInput{})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_UpdateWorkspace_InvalidPage(t *testing.T) {
	t.Parallel()

	page := "coral"
	svc := newTestService(nil, nil, nil, nil, nil)
	_, err := svc.UpdateWorkspace(context.Background(), uuid.New(), UpdateWorkspaceInput{ActivePage: &page})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Feedback_FiltersAndTags(t *testing.T) {
	t.Parallel()

	ideaID := uuid.New()
	var saved []domain.Highlight
	ws := &writingRepoMock{
		SetFeedbackFunc: func(ctx context.Context, id uuid.UUID, highlights []domain.Highlight, at time.Time) error {
			saved = highlights
			return nil
		},
	}
	ai := &assistantMock{
		WritingFeedbackFunc: func(ctx context.Context, flatText string, idea domain.IdeaContext, samples []string, summary string) ([]llm.RawHighlight, error) {
			assert.Equal(t, "The first claim here is bold", flatText, "markdown is stripped")
			return []llm.RawHighlight{
				{Type: "weakness", MatchText: "first claim", Comment: "needs support"},
				{Type: "edit", MatchText: "not in the draft", Comment: "dangling", SuggestedEdit: "x"},
			}, nil
		},
	}

	svc := newTestService(ws, existingIdea(ideaID), nil, ai, nil)
	got, err := svc.Feedback(context.Background(), FeedbackInput{
		IdeaID:  ideaID,
		Content: "The **first claim** here is *bold*",
		PageKey: "develop",
	})

	require.NoError(t, err)
	require.Len(t, got, 1, "unmatchable highlight dropped")
	assert.Equal(t, domain.HighlightType("weakness"), got[0].Type)
	assert.Equal(t, domain.PageDevelop, got[0].PageKey)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, got, saved, "surviving batch persisted")
}

func TestService_Feedback_EmptyContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil, nil, nil, nil)
	_, err := svc.Feedback(context.Background(), FeedbackInput{IdeaID: uuid.New(), Content: "   "})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Chat_AppendsAndPersists(t *testing.T) {
	t.Parallel()

	ideaID := uuid.New()
	var persisted []domain.ChatMessage
	convos := &conversationRepoMock{
		GetByIdeaIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WritingConversation, error) {
			return &domain.WritingConversation{
				IdeaID: ideaID,
				Messages: []domain.ChatMessage{
					{Role: domain.RoleUser, Content: "earlier question"},
					{Role: domain.RoleAssistant, Content: "earlier answer"},
				},
			}, nil
		},
		UpsertFunc: func(ctx context.Context, id uuid.UUID, messages []domain.ChatMessage) error {
			persisted = messages
			return nil
		},
	}
	ai := &assistantMock{
		StreamChatFunc: func(ctx context.Context, messages []domain.ChatMessage, draft string, idea domain.IdeaContext, samples []string, summary string, onDelta func(string)) (string, error) {
			require.Len(t, messages, 3, "history plus new user message")
			assert.Equal(t, "what next?", messages[2].Content)
			onDelta("partial ")
			onDelta("reply")
			return "partial reply", nil
		},
	}
	ws := &writingRepoMock{}

	var deltas []string
	svc := newTestService(ws, existingIdea(ideaID), convos, ai, nil)
	reply, err := svc.Chat(context.Background(), ChatInput{IdeaID: ideaID, Message: "what next?"}, func(s string) {
		deltas = append(deltas, s)
	})

	require.NoError(t, err)
	assert.Equal(t, "partial reply", reply)
	assert.Equal(t, []string{"partial ", "reply"}, deltas)
	require.Len(t, persisted, 4)
	assert.Equal(t, domain.RoleAssistant, persisted[3].Role)
	assert.Equal(t, "partial reply", persisted[3].Content)
}

func TestService_Chat_EmptyMessage(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil, nil, nil, nil)
	_, err := svc.Chat(context.Background(), ChatInput{IdeaID: uuid.New()}, func(string) {})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Chat_PersistFailureStillReturnsReply(t *testing.T) {
	t.Parallel()

	ideaID := uuid.New()
	convos := &conversationRepoMock{
		GetByIdeaIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WritingConversation, error) {
			return nil, domain.ErrNotFound
		},
		UpsertFunc: func(ctx context.Context, id uuid.UUID, messages []domain.ChatMessage) error {
			return errors.New("db down")
		},
	}
	ai := &assistantMock{
		StreamChatFunc: func(ctx context.Context, messages []domain.ChatMessage, draft string, idea domain.IdeaContext, samples []string, summary string, onDelta func(string)) (string, error) {
			return "reply", nil
		},
	}

	svc := newTestService(&writingRepoMock{}, existingIdea(ideaID), convos, ai, nil)
	reply, err := svc.Chat(context.Background(), ChatInput{IdeaID: ideaID, Message: "hi"}, func(string) {})

	require.Error(t, err)
	assert.Equal(t, "reply", reply)
}

func TestService_Conversation_MissingIsEmpty(t *testing.T) {
	t.Parallel()

	convos := &conversationRepoMock{
		GetByIdeaIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WritingConversation, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(nil, nil, convos, nil, nil)
	messages, err := svc.Conversation(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestService_UploadImage(t *testing.T) {
	t.Parallel()

	ideaID := uuid.New()
	up := &uploaderMock{
		UploadFunc: func(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
			assert.Contains(t, key, ideaID.String()+"/")
			assert.Contains(t, key, ".png")
			assert.Equal(t, "image/png", contentType)
			return "https://cdn.example.com/writing-images/" + key, nil
		},
	}

	svc := newTestService(nil, existingIdea(ideaID), nil, nil, up)
	url, err := svc.UploadImage(context.Background(), UploadInput{
		IdeaID:      ideaID,
		FileName:    "sketch.png",
		ContentType: "image/png",
		Body:        io.LimitReader(nil, 0),
	})

	require.NoError(t, err)
	assert.Contains(t, url, ideaID.String())
}
