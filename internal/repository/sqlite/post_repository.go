package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	author_id TEXT NOT NULL,
	author_name TEXT NOT NULL DEFAULT '',
	author_avatar TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

const createPostsAuthorIndex = `CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createPostsAuthorIndex); err != nil {
		return fmt.Errorf("create posts author index: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (id, author_id, author_name, author_avatar, text, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.AuthorID,
		post.AuthorName,
		post.AuthorAvatar,
		post.Text,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, author_id, author_name, author_avatar, text, created_at
FROM posts
WHERE author_id = ?
ORDER BY created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.AuthorName,
			&post.AuthorAvatar,
			&post.Text,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// DeleteByAuthor removes every post owned by the author. Removing zero posts
// is not an error; the cascade calls this unconditionally.
func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE author_id = ?`, authorID); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	return nil
}
