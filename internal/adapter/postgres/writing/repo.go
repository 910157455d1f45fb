// Package writing implements the idea-writing repository using PostgreSQL.
package writing

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/adapter/postgres"
	"github.com/ideagarden/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = "id, idea_id, pages, active_page, highlights, word_count, last_ai_feedback_at, created_at, updated_at"

// Repo provides writing-workspace persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new writing repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByIdeaID returns the workspace of an idea.
// Returns domain.ErrNotFound when none exists yet.
func (r *Repo) GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (*domain.IdeaWriting, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select(columns).
		From("idea_writing").
		Where(sq.Eq{"idea_id": ideaID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build writing select: %w", err)
	}

	var w domain.IdeaWriting
	if err := pgxscan.Get(ctx, q, &w, query, args...); err != nil {
		return nil, postgres.MapError(err, "idea_writing", ideaID)
	}
	return &w, nil
}

// Create inserts a workspace row and returns it. The caller supplies
// the defaults; a second insert for the same idea fails with
// domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) Create(ctx context.Context, w *domain.IdeaWriting) (*domain.IdeaWriting, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Insert("idea_writing").
		Columns("id", "idea_id", "pages", "active_page", "highlights", "word_count").
		Values(w.ID, w.IdeaID, w.Pages, w.ActivePage.String(), w.Highlights, w.WordCount).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build writing insert: %w", err)
	}

	var created domain.IdeaWriting
	if err := pgxscan.Get(ctx, q, &created, query, args...); err != nil {
		return nil, postgres.MapError(err, "idea_writing", w.IdeaID)
	}
	return &created, nil
}

// UpdateParams enumerates the mutable workspace fields. A nil field is
// left untouched.
type UpdateParams struct {
	Pages      *domain.Pages
	ActivePage *domain.PageKey
	WordCount  *int
	Highlights *[]domain.Highlight
}

// IsEmpty reports whether no field is set.
func (p UpdateParams) IsEmpty() bool {
	return p.Pages == nil && p.ActivePage == nil && p.WordCount == nil && p.Highlights == nil
}

// Update applies the set fields to the idea's workspace and returns the
// updated row.
func (r *Repo) Update(ctx context.Context, ideaID uuid.UUID, params UpdateParams) (*domain.IdeaWriting, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := psql.Update("idea_writing").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"idea_id": ideaID})
	if params.Pages != nil {
		b = b.Set("pages", *params.Pages)
	}
	if params.ActivePage != nil {
		b = b.Set("active_page", params.ActivePage.String())
	}
	if params.WordCount != nil {
		b = b.Set("word_count", *params.WordCount)
	}
	if params.Highlights != nil {
		b = b.Set("highlights", *params.Highlights)
	}

	query, args, err := b.Suffix("RETURNING " + columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build writing update: %w", err)
	}

	var updated domain.IdeaWriting
	if err := pgxscan.Get(ctx, q, &updated, query, args...); err != nil {
		return nil, postgres.MapError(err, "idea_writing", ideaID)
	}
	return &updated, nil
}

// SetFeedback replaces the highlight batch and stamps the feedback time.
func (r *Repo) SetFeedback(ctx context.Context, ideaID uuid.UUID, highlights []domain.Highlight, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Update("idea_writing").
		Set("highlights", highlights).
		Set("last_ai_feedback_at", at).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"idea_id": ideaID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build feedback update: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "idea_writing", ideaID)
	}
	return nil
}

// PriorPages returns the pages of up to limit workspaces belonging to
// OTHER ideas, most recently updated first. Used to sample prior
// writing for voice consistency.
func (r *Repo) PriorPages(ctx context.Context, excludeIdeaID uuid.UUID, limit int) ([]domain.Pages, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select("pages").
		From("idea_writing").
		Where(sq.NotEq{"idea_id": excludeIdeaID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build prior pages select: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("prior pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Pages
	for rows.Next() {
		var p domain.Pages
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan prior pages: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ActiveIdeaIDs returns ids of ideas whose workspace has any non-blank
// page content.
func (r *Repo) ActiveIdeaIDs(ctx context.Context) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT idea_id, pages FROM idea_writing")
	if err != nil {
		return nil, fmt.Errorf("active idea ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var p domain.Pages
		if err := rows.Scan(&id, &p); err != nil {
			return nil, fmt.Errorf("scan active idea ids: %w", err)
		}
		if !p.IsBlank() {
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}
