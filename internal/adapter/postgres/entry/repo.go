// Package entry implements the journal-entry repository using PostgreSQL.
package entry

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

const columns = "id, day_number, date, raw_transcription, title, summary, mood, tags, created_at, updated_at"

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns an entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select(columns).
		From("entries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry select: %w", err)
	}

	var e domain.Entry
	if err := pgxscan.Get(ctx, q, &e, query, args...); err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}
	return &e, nil
}

// List returns entries matching the filter, ordered by day_number DESC.
func (r *Repo) List(ctx context.Context, filter Filter) ([]*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := filter.apply(psql.
		Select(columns).
		From("entries")).
		OrderBy("day_number DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry list: %w", err)
	}

	var entries []*domain.Entry
	if err := pgxscan.Select(ctx, q, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// MaxDayNumber returns the highest assigned day number, or 0 when the
// store is empty. Concurrent submissions can read the same maximum;
// day numbers are not guarded by a unique constraint.
func (r *Repo) MaxDayNumber(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var max int
	row := q.QueryRow(ctx, "SELECT COALESCE(MAX(day_number), 0) FROM entries")
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("max day number: %w", err)
	}
	return max, nil
}

// Create inserts a new entry and returns the persisted row.
func (r *Repo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Insert("entries").
		Columns("id", "day_number", "date", "raw_transcription", "title", "summary", "mood", "tags").
		Values(e.ID, e.DayNumber, e.Date, e.RawTranscription, e.Title, e.Summary, e.Mood.String(), e.Tags).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry insert: %w", err)
	}

	var created domain.Entry
	if err := pgxscan.Get(ctx, q, &created, query, args...); err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}
	return &created, nil
}

// UpdateMerged overwrites the merge-affected fields of the target entry.
func (r *Repo) UpdateMerged(ctx context.Context, id uuid.UUID, rawTranscription, summary string, tags []string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Update("entries").
		Set("raw_transcription", rawTranscription).
		Set("summary", summary).
		Set("tags", tags).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build entry update: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an entry. Ideas still owned by it are removed by the
// ON DELETE CASCADE constraint, so merge must reassign them first.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
