package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend-microblog/internal/blob"
)

// ErrTextRequired is returned before any I/O when a publish carries no text.
var ErrTextRequired = errors.New("el texto es obligatorio")

// ProfileSource resolves the identity fields stamped onto a post.
// The profile package's redis store satisfies it.
type ProfileSource interface {
	Get(ctx context.Context, field string) (string, bool)
}

const (
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
)

type Service struct {
	docs      DocumentStore
	blobs     blob.Store
	profiles  ProfileSource
	anonymous string

	now func() time.Time
}

func NewService(docs DocumentStore, blobs blob.Store, profiles ProfileSource, anonymous string) *Service {
	return &Service{
		docs:      docs,
		blobs:     blobs,
		profiles:  profiles,
		anonymous: anonymous,
		now:       time.Now,
	}
}

// Publish runs the upload/write sequence: validate the text, resolve the
// author identity, upload the image then the file when present, append the
// record. The first failure aborts the rest; uploads that already finished
// are left behind (the blob store is write-only, so nothing cleans them up).
func (s *Service) Publish(ctx context.Context, input PublishInput) (Post, error) {
	if input.Text == "" {
		return Post{}, ErrTextRequired
	}

	firstName, ok := s.profiles.Get(ctx, fieldFirstName)
	if !ok {
		firstName = s.anonymous
	}
	lastName, _ := s.profiles.Get(ctx, fieldLastName)

	var imageURL, fileURL *string
	if input.Image != nil {
		url, err := s.blobs.Put(ctx, fmt.Sprintf("images/%d.jpg", s.now().UnixMilli()), input.Image, "image/jpeg")
		if err != nil {
			return Post{}, err
		}
		imageURL = &url
	}
	if input.File != nil {
		url, err := s.blobs.Put(ctx, fmt.Sprintf("files/%d", s.now().UnixMilli()), input.File, "application/octet-stream")
		if err != nil {
			return Post{}, err
		}
		fileURL = &url
	}

	return s.docs.Append(ctx, Post{
		Text:      input.Text,
		ImageURL:  imageURL,
		FileURL:   fileURL,
		Timestamp: s.now().UnixMilli(),
		FirstName: firstName,
		LastName:  lastName,
	})
}

// Feed returns the full collection ascending by timestamp, a one-shot
// snapshot with no incremental update. A failed fetch surfaces as an error;
// an empty collection is an empty list.
func (s *Service) Feed(ctx context.Context) ([]Post, error) {
	return s.docs.ListByTimestamp(ctx)
}
