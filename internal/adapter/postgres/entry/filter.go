package entry

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/ideagarden/backend/internal/domain"
)

// Filter defines parameters for listing entries.
type Filter struct {
	// Category keeps entries that have at least one idea in the category.
	Category *domain.IdeaCategory

	// Status keeps entries that have at least one idea with the status.
	Status *domain.IdeaStatus

	// Tag keeps entries whose tag set contains the tag.
	Tag *string

	// Search performs ILIKE '%...%' over title, summary, and raw transcription.
	Search *string
}

// apply adds the filter's predicates to the base select.
func (f Filter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.Tag != nil && *f.Tag != "" {
		b = b.Where("? = ANY (tags)", *f.Tag)
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"summary": pattern},
			sq.ILike{"raw_transcription": pattern},
		})
	}
	if f.Category != nil {
		b = b.Where("EXISTS (SELECT 1 FROM ideas i WHERE i.entry_id = entries.id AND i.category = ?)",
			f.Category.String())
	}
	if f.Status != nil {
		b = b.Where("EXISTS (SELECT 1 FROM ideas i WHERE i.entry_id = entries.id AND i.status = ?)",
			f.Status.String())
	}
	return b
}
