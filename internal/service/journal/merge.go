package journal

import (
	"context"
	"fmt"
	"log/slog"
)

// MergeResult reports the outcome of a merge.
type MergeResult struct {
	MergedInto     string `json:"mergedInto"`
	MovedIdeas     int    `json:"movedIdeas"`
	DeletedEntryID string `json:"deletedEntryId"`
}

// Merge folds the source entry into the target: transcriptions are
// concatenated with a divider, summaries joined, tag sets unioned, and
// every idea reassigned, then the source entry is deleted. All of it
// runs in one transaction so a failure leaves both entries untouched.
// The target keeps its own day number, date, title, and mood.
func (s *Service) Merge(ctx context.Context, input MergeInput) (*MergeResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *MergeResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		target, err := s.entries.GetByID(ctx, input.TargetID)
		if err != nil {
			return err
		}
		source, err := s.entries.GetByID(ctx, input.SourceID)
		if err != nil {
			return err
		}

		combined := target.RawTranscription + transcriptDivider + source.RawTranscription
		summary := target.Summary + " " + source.Summary
		tags := mergeTags(target.Tags, source.Tags)

		if err := s.entries.UpdateMerged(ctx, target.ID, combined, summary, tags); err != nil {
			return err
		}

		moved, err := s.ideas.ReassignEntry(ctx, source.ID, target.ID)
		if err != nil {
			return err
		}

		if err := s.entries.Delete(ctx, source.ID); err != nil {
			return err
		}

		result = &MergeResult{
			MergedInto:     target.ID.String(),
			MovedIdeas:     moved,
			DeletedEntryID: source.ID.String(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal.Merge: %w", err)
	}

	s.log.InfoContext(ctx, "entries merged",
		slog.String("target_id", result.MergedInto),
		slog.String("source_id", result.DeletedEntryID),
		slog.Int("moved_ideas", result.MovedIdeas))

	return result, nil
}
