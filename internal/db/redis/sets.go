package redis

import (
	"context"

	"github.com/casevault/filesift/internal/db"
)

// SAdd adds members to a set and returns how many were newly added.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	added, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSAdd, Err: err}
	}
	return added, nil
}

// SCard returns the cardinality of a set. Missing keys count as zero.
func (s *Store) SCard(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Scard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	return n, nil
}
