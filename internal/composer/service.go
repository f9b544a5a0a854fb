package composer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"backend-microblog/internal/post"

	"github.com/redis/go-redis/v9"
)

// Publisher is the publish entry point the composer drives once a draft is
// submitted. The post service satisfies it.
type Publisher interface {
	Publish(ctx context.Context, input post.PublishInput) (post.Post, error)
}

// Service persists one compose state per session in redis and runs the
// publish as a single fire-and-forget task per session. If the session is
// abandoned mid-publish, the finished state is written and simply never read.
type Service struct {
	redis  *redis.Client
	poster Publisher

	// done, when set, is signalled after the background publish finishes.
	done func(session string)
}

func NewService(redisClient *redis.Client, poster Publisher) *Service {
	return &Service{redis: redisClient, poster: poster}
}

func stateKey(session string) string {
	return "composer:" + session + ":state"
}

func attachmentKey(session, kind string) string {
	return "composer:" + session + ":" + kind
}

func lockKey(session string) string {
	return "composer:" + session + ":publishing"
}

// State loads the session's compose record; a session never touched reads
// as the zero draft.
func (s *Service) State(ctx context.Context, session string) (State, error) {
	raw, err := s.redis.Get(ctx, stateKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

func (s *Service) save(ctx context.Context, session string, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, stateKey(session), raw, 0).Err()
}

func (s *Service) SetText(ctx context.Context, session, text string) (State, error) {
	st, err := s.State(ctx, session)
	if err != nil {
		return State{}, err
	}
	st.SetText(text)
	return st, s.save(ctx, session, st)
}

func (s *Service) AttachImage(ctx context.Context, session string, data []byte) (State, error) {
	return s.attach(ctx, session, "image", data)
}

func (s *Service) AttachFile(ctx context.Context, session string, data []byte) (State, error) {
	return s.attach(ctx, session, "file", data)
}

func (s *Service) attach(ctx context.Context, session, kind string, data []byte) (State, error) {
	st, err := s.State(ctx, session)
	if err != nil {
		return State{}, err
	}
	if err := s.redis.Set(ctx, attachmentKey(session, kind), data, 0).Err(); err != nil {
		return State{}, err
	}
	if kind == "image" {
		st.AttachImage(kind)
	} else {
		st.AttachFile(kind)
	}
	return st, s.save(ctx, session, st)
}

// Publish flips the session into its publishing state and hands the upload
// sequence to a background task. The caller gets the busy state back
// immediately; the outcome lands in the stored state when the task ends.
// A redis lock holds the one-outstanding-task invariant even when two
// submissions for the same session race.
func (s *Service) Publish(ctx context.Context, session string) (State, error) {
	st, err := s.State(ctx, session)
	if err != nil {
		return State{}, err
	}
	if err := st.BeginPublish(); err != nil {
		return st, err
	}

	locked, err := s.redis.SetNX(ctx, lockKey(session), "1", 0).Result()
	if err != nil {
		return State{}, err
	}
	if !locked {
		return st, ErrPublishInFlight
	}

	if err := s.save(ctx, session, st); err != nil {
		s.redis.Del(ctx, lockKey(session))
		return State{}, err
	}

	go s.runPublish(session, st)
	return st, nil
}

func (s *Service) runPublish(session string, st State) {
	// Detached from the request: once begun, the publish runs to
	// completion or failure.
	ctx := context.Background()

	input := post.PublishInput{Text: st.Text}
	var err error
	if st.ImageRef != "" {
		input.Image, err = s.stagedAttachment(ctx, session, "image")
	}
	if err == nil && st.FileRef != "" {
		input.File, err = s.stagedAttachment(ctx, session, "file")
	}
	if err == nil {
		_, err = s.poster.Publish(ctx, input)
	}

	next, loadErr := s.State(ctx, session)
	if loadErr != nil {
		next = st
	}
	if err != nil {
		next.PublishFailed(err.Error())
	} else {
		next.PublishSucceeded()
		s.redis.Del(ctx, attachmentKey(session, "image"), attachmentKey(session, "file"))
	}
	if err := s.save(ctx, session, next); err != nil {
		log.Printf("composer state save: %v", err)
	}
	s.redis.Del(ctx, lockKey(session))
	if s.done != nil {
		s.done(session)
	}
}

// stagedAttachment loads the bytes an earlier attach staged. The ref in the
// state says the attachment exists, so a missing key is a failure, not an
// empty attachment.
func (s *Service) stagedAttachment(ctx context.Context, session, kind string) ([]byte, error) {
	data, err := s.redis.Get(ctx, attachmentKey(session, kind)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load staged %s: %w", kind, err)
	}
	return data, nil
}
