package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
)

// transcriptDivider separates transcriptions concatenated by a merge.
const transcriptDivider = "\n\n---\n\n"

// Submit processes a voice-memo transcription: runs extraction, then
// creates exactly one new entry with the next day number. An explicit
// date overrides the server clock; multiple entries may share a date.
// The extraction call happens outside the transaction; all writes
// happen inside one.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	extracted, err := s.extractor.ExtractIdeas(ctx, input.Transcription)
	if err != nil {
		return nil, fmt.Errorf("journal.Submit: %w", err)
	}

	date := s.today()
	if input.Date != nil {
		date = dateOnly(*input.Date)
	}

	var result *domain.Entry
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		maxDay, err := s.entries.MaxDayNumber(ctx)
		if err != nil {
			return err
		}

		entry, err := s.entries.Create(ctx, &domain.Entry{
			ID:               uuid.New(),
			DayNumber:        maxDay + 1,
			Date:             date,
			RawTranscription: input.Transcription,
			Title:            extracted.Title,
			Summary:          extracted.Summary,
			Mood:             extracted.Mood,
			Tags:             extracted.Tags,
		})
		if err != nil {
			return err
		}

		ideas := make([]*domain.Idea, 0, len(extracted.Ideas))
		for _, ei := range extracted.Ideas {
			ideas = append(ideas, &domain.Idea{
				ID:            uuid.New(),
				EntryID:       entry.ID,
				Title:         ei.Title,
				Description:   ei.Description,
				Category:      ei.Category,
				Status:        domain.StatusRaw,
				Confidence:    ei.Confidence,
				ActionItems:   orEmpty(ei.ActionItems),
				Tags:          orEmpty(ei.Tags),
				AISuggestions: orEmpty(ei.AISuggestions),
			})
		}
		created, err := s.ideas.CreateBatch(ctx, ideas)
		if err != nil {
			return err
		}

		entry.Ideas = derefIdeas(created)
		result = entry
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal.Submit: %w", err)
	}

	s.log.InfoContext(ctx, "entry submitted",
		slog.String("entry_id", result.ID.String()),
		slog.Int("day_number", result.DayNumber),
		slog.Int("ideas", len(result.Ideas)))

	return result, nil
}

// today truncates the clock to a calendar date in UTC.
func (s *Service) today() time.Time {
	return dateOnly(s.now())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mergeTags unions two tag lists, preserving first-seen order.
func mergeTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func derefIdeas(ideas []*domain.Idea) []domain.Idea {
	out := make([]domain.Idea, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, *i)
	}
	return out
}
