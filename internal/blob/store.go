package blob

import (
	"context"

	"backend-microblog/internal/db"

	"github.com/google/uuid"
)

// Store writes an opaque payload under a storage path and resolves a
// publicly reachable URL for it. Blobs are never updated or deleted.
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type PgStore struct {
	db      db.Querier
	baseURL string
}

func NewPgStore(q db.Querier, baseURL string) *PgStore {
	return &PgStore{db: q, baseURL: baseURL}
}

func (s *PgStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO blobs (id, path, content_type, data)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), path, contentType, data)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/storage/" + path, nil
}

func (s *PgStore) Open(ctx context.Context, path string) ([]byte, string, error) {
	row := s.db.QueryRow(ctx, `
		SELECT data, content_type FROM blobs WHERE path=$1
	`, path)
	var data []byte
	var contentType string
	if err := row.Scan(&data, &contentType); err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
