package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one journal session: a raw voice-memo transcription plus the
// title, summary, mood, and tags generated for it.
type Entry struct {
	ID               uuid.UUID `db:"id"`
	DayNumber        int       `db:"day_number"`
	Date             time.Time `db:"date"`
	RawTranscription string    `db:"raw_transcription"`
	Title            string    `db:"title"`
	Summary          string    `db:"summary"`
	Mood             Mood      `db:"mood"`
	Tags             []string  `db:"tags"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`

	// Ideas extracted from this entry. Populated by list/get operations.
	Ideas []Idea `db:"-"`
}

// Idea is one extracted idea owned by exactly one entry. All fields
// except Status are immutable after extraction; merging entries
// reassigns ownership.
type Idea struct {
	ID            uuid.UUID    `db:"id"`
	EntryID       uuid.UUID    `db:"entry_id"`
	Title         string       `db:"title"`
	Description   string       `db:"description"`
	Category      IdeaCategory `db:"category"`
	Status        IdeaStatus   `db:"status"`
	Confidence    float64      `db:"confidence"`
	ActionItems   []string     `db:"action_items"`
	Tags          []string     `db:"tags"`
	AISuggestions []string     `db:"ai_suggestions"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}
