package post

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrPostNotFound is returned when a delete targets a missing post
var ErrPostNotFound = errors.New("post not found")

// Repository defines post data access
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListRecent(ctx context.Context, limit int) ([]*Post, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates post repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (id, content, author_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Content,
		p.AuthorID,
		p.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	query := `SELECT * FROM posts WHERE id = $1`
	var p Post
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM posts WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var posts []*Post
	err = r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...)
	return posts, err
}

// Delete removes a post permanently
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]*Post, error) {
	query := `
		SELECT * FROM posts
		ORDER BY created_at DESC
		LIMIT $1
	`
	var posts []*Post
	err := r.db.SelectContext(ctx, &posts, query, limit)
	return posts, err
}
