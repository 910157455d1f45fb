// Package conversation implements the writing-conversation repository
// using PostgreSQL.
package conversation

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/adapter/postgres"
	"github.com/ideagarden/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = "id, idea_id, messages, created_at, updated_at"

// Repo provides conversation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new conversation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByIdeaID returns the conversation of an idea.
// Returns domain.ErrNotFound when none exists.
func (r *Repo) GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (*domain.WritingConversation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select(columns).
		From("writing_conversations").
		Where(sq.Eq{"idea_id": ideaID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build conversation select: %w", err)
	}

	var c domain.WritingConversation
	if err := pgxscan.Get(ctx, q, &c, query, args...); err != nil {
		return nil, postgres.MapError(err, "writing_conversation", ideaID)
	}
	return &c, nil
}

// Upsert replaces the full message list of the idea's conversation,
// creating the row on first use. Last writer wins on concurrent chats
// for the same idea.
func (r *Repo) Upsert(ctx context.Context, ideaID uuid.UUID, messages []domain.ChatMessage) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Insert("writing_conversations").
		Columns("id", "idea_id", "messages").
		Values(uuid.New(), ideaID, messages).
		Suffix("ON CONFLICT (idea_id) DO UPDATE SET messages = EXCLUDED.messages, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build conversation upsert: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "writing_conversation", ideaID)
	}
	return nil
}
