package moderation

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// WordRepository defines banned-word data access
type WordRepository interface {
	ListWords(ctx context.Context) ([]BannedWord, error)
	CreateWord(ctx context.Context, w *BannedWord) error
}

type wordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates banned-word repository
func NewWordRepository(db *sqlx.DB) WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) ListWords(ctx context.Context) ([]BannedWord, error) {
	query := `
		SELECT id, word, category, created_by
		FROM banned_words
		ORDER BY word ASC
	`
	var words []BannedWord
	err := r.db.SelectContext(ctx, &words, query)
	return words, err
}

func (r *wordRepository) CreateWord(ctx context.Context, w *BannedWord) error {
	query := `
		INSERT INTO banned_words (id, word, category, created_by)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Word,
		w.Category,
		w.CreatedBy,
	)
	return err
}
