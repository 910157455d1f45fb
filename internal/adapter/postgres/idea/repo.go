// Package idea implements the idea repository using PostgreSQL.
package idea

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

const columns = "id, entry_id, title, description, category, status, confidence, action_items, tags, ai_suggestions, created_at, updated_at"

// Repo provides idea persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new idea repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns an idea by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select(columns).
		From("ideas").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build idea select: %w", err)
	}

	var i domain.Idea
	if err := pgxscan.Get(ctx, q, &i, query, args...); err != nil {
		return nil, postgres.MapError(err, "idea", id)
	}
	return &i, nil
}

// ListByEntryIDs returns all ideas owned by the given entries, ordered
// by creation time. Used to preload ideas for entry listings.
func (r *Repo) ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]*domain.Idea, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select(columns).
		From("ideas").
		Where(sq.Eq{"entry_id": entryIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build idea list: %w", err)
	}

	var ideas []*domain.Idea
	if err := pgxscan.Select(ctx, q, &ideas, query, args...); err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return ideas, nil
}

// CreateBatch inserts all ideas in one statement and returns the
// persisted rows in insertion order.
func (r *Repo) CreateBatch(ctx context.Context, ideas []*domain.Idea) ([]*domain.Idea, error) {
	if len(ideas) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := psql.
		Insert("ideas").
		Columns("id", "entry_id", "title", "description", "category", "status",
			"confidence", "action_items", "tags", "ai_suggestions")
	for _, i := range ideas {
		b = b.Values(i.ID, i.EntryID, i.Title, i.Description, i.Category.String(),
			i.Status.String(), i.Confidence, i.ActionItems, i.Tags, i.AISuggestions)
	}

	query, args, err := b.Suffix("RETURNING " + columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build idea insert: %w", err)
	}

	var created []*domain.Idea
	if err := pgxscan.Select(ctx, q, &created, query, args...); err != nil {
		return nil, fmt.Errorf("insert ideas: %w", err)
	}
	return created, nil
}

// UpdateStatus sets the status of an idea and returns the updated row.
// Status is the only mutable field outside of entry merges.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IdeaStatus) (*domain.Idea, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Update("ideas").
		Set("status", status.String()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build idea update: %w", err)
	}

	var updated domain.Idea
	if err := pgxscan.Get(ctx, q, &updated, query, args...); err != nil {
		return nil, postgres.MapError(err, "idea", id)
	}
	return &updated, nil
}

// ReassignEntry moves every idea owned by fromEntry to toEntry.
// Returns the number of reassigned ideas. Reassigning zero ideas is
// not an error.
func (r *Repo) ReassignEntry(ctx context.Context, fromEntry, toEntry uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		"UPDATE ideas SET entry_id = $1, updated_at = now() WHERE entry_id = $2",
		toEntry, fromEntry)
	if err != nil {
		return 0, postgres.MapError(err, "idea", fromEntry)
	}
	return int(tag.RowsAffected()), nil
}
