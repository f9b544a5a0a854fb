package profile

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// The four fixed preference fields the app stores for its single local user.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldBirthDate = "birth_date"
)

var fields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldBirthDate}

type Profile struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
}

// Store keeps the user profile fields in a private redis namespace,
// absent until first set. Last writer wins; no validation is applied.
type Store struct {
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func key(field string) string {
	return "prefs:" + field
}

// Get returns the stored value for a field and whether it was ever set.
// Reads never fail from the caller's perspective; a transport error reads
// as absent.
func (s *Store) Get(ctx context.Context, field string) (string, bool) {
	val, err := s.redis.Get(ctx, key(field)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("profile read %s: %v", field, err)
		}
		return "", false
	}
	return val, true
}

// Set stores a field value. Writes are fire-and-forget: failures are
// logged, never surfaced to the caller.
func (s *Store) Set(ctx context.Context, field, value string) {
	if err := s.redis.Set(ctx, key(field), value, 0).Err(); err != nil {
		log.Printf("profile write %s: %v", field, err)
	}
}

// Snapshot reads all four fields, leaving never-set ones nil.
func (s *Store) Snapshot(ctx context.Context) Profile {
	var p Profile
	for _, field := range fields {
		val, ok := s.Get(ctx, field)
		if !ok {
			continue
		}
		v := val
		switch field {
		case FieldFirstName:
			p.FirstName = &v
		case FieldLastName:
			p.LastName = &v
		case FieldEmail:
			p.Email = &v
		case FieldBirthDate:
			p.BirthDate = &v
		}
	}
	return p
}

// Save writes the fields present in p, leaving nil ones untouched.
func (s *Store) Save(ctx context.Context, p Profile) {
	if p.FirstName != nil {
		s.Set(ctx, FieldFirstName, *p.FirstName)
	}
	if p.LastName != nil {
		s.Set(ctx, FieldLastName, *p.LastName)
	}
	if p.Email != nil {
		s.Set(ctx, FieldEmail, *p.Email)
	}
	if p.BirthDate != nil {
		s.Set(ctx, FieldBirthDate, *p.BirthDate)
	}
}
