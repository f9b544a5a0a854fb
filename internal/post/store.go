package post

import (
	"context"

	"backend-microblog/internal/db"

	"github.com/google/uuid"
)

// DocumentStore is the narrow surface the publish workflow needs from the
// posts collection: append one record, read the whole thing back in
// timestamp order.
type DocumentStore interface {
	Append(ctx context.Context, p Post) (Post, error)
	ListByTimestamp(ctx context.Context) ([]Post, error)
}

type PgStore struct {
	db db.Querier
}

func NewPgStore(q db.Querier) *PgStore {
	return &PgStore{db: q}
}

func (s *PgStore) Append(ctx context.Context, p Post) (Post, error) {
	p.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO posts (id, text, image_url, file_url, timestamp, first_name, last_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, p.ID, p.Text, p.ImageURL, p.FileURL, p.Timestamp, p.FirstName, p.LastName)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *PgStore) ListByTimestamp(ctx context.Context) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, text, image_url, file_url, timestamp, first_name, last_name
		FROM posts
		ORDER BY timestamp
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Text, &p.ImageURL, &p.FileURL, &p.Timestamp, &p.FirstName, &p.LastName); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
