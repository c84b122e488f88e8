package moderation

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WordStore holds the curated banned-word list. Consumers scan against
// an in-memory snapshot; the snapshot is pull-based, so an Add is not
// visible to scans until the next Reload.
type WordStore struct {
	repo WordRepository

	mu    sync.RWMutex
	words []BannedWord
}

// NewWordStore creates a word store around the given repository
func NewWordStore(repo WordRepository) *WordStore {
	return &WordStore{repo: repo}
}

// Load fetches the full word list and replaces the snapshot. A fetch
// failure degrades to an empty snapshot with a logged error so that
// moderation never blocks content flows.
func (s *WordStore) Load(ctx context.Context) []BannedWord {
	words, err := s.repo.ListWords(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load banned words")
		words = nil
	}

	s.mu.Lock()
	s.words = words
	s.mu.Unlock()

	return s.snapshot()
}

// Reload refreshes the snapshot; callers use it after Add so the next
// scan sees the new word.
func (s *WordStore) Reload(ctx context.Context) []BannedWord {
	return s.Load(ctx)
}

// Words returns the current snapshot
func (s *WordStore) Words() []BannedWord {
	return s.snapshot()
}

func (s *WordStore) snapshot() []BannedWord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BannedWord, len(s.words))
	copy(out, s.words)
	return out
}

// Add creates a banned word. An empty word after trimming is a silent
// no-op. Duplicate words are tolerated; they only produce redundant
// scan matches.
func (s *WordStore) Add(ctx context.Context, word, category string, createdBy uuid.UUID) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}

	w := &BannedWord{
		ID:        uuid.New(),
		Word:      word,
		CreatedBy: createdBy,
	}
	if category != "" {
		w.Category = sql.NullString{String: category, Valid: true}
	}

	return s.repo.CreateWord(ctx, w)
}
