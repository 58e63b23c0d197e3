package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "wizard:session:" // Session JSON: wizard:session:{id}
	userSessionPrefix = "wizard:user:"    // Set of session IDs per user: wizard:user:{uid}
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps wizard sessions in Redis with a TTL. A per-user set indexes
// the sessions each user may resume; an ownership mismatch reads exactly
// like a missing session.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (st *Store) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := st.client.Pipeline()
	pipe.Set(ctx, st.sessionKey(s.ID), data, st.ttl)
	pipe.SAdd(ctx, st.userKey(s.UserID), s.ID)
	pipe.Expire(ctx, st.userKey(s.UserID), st.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (st *Store) Get(ctx context.Context, id, userID string) (*Session, error) {
	data, err := st.client.Get(ctx, st.sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Ownership mismatch is indistinguishable from absence.
	if s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (st *Store) Delete(ctx context.Context, id, userID string) error {
	s, err := st.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	pipe := st.client.Pipeline()
	pipe.Del(ctx, st.sessionKey(s.ID))
	pipe.SRem(ctx, st.userKey(s.UserID), s.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListIDs returns the session ids currently indexed for a user.
func (st *Store) ListIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := st.client.SMembers(ctx, st.userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

// SweepUserIndexes removes set members whose backing session keys have
// expired. Session data itself expires via TTL; only the index needs help.
func (st *Store) SweepUserIndexes(ctx context.Context) (int, error) {
	var removed int
	iter := st.client.Scan(ctx, 0, userSessionPrefix+"*", 100).Iterator()

	for iter.Next(ctx) {
		setKey := iter.Val()
		ids, err := st.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, fmt.Errorf("sweep %s: %w", setKey, err)
		}
		for _, id := range ids {
			exists, err := st.client.Exists(ctx, st.sessionKey(id)).Result()
			if err != nil {
				return removed, fmt.Errorf("sweep %s: %w", setKey, err)
			}
			if exists == 0 {
				if err := st.client.SRem(ctx, setKey, id).Err(); err != nil {
					return removed, fmt.Errorf("sweep %s: %w", setKey, err)
				}
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("sweep scan: %w", err)
	}
	return removed, nil
}

func (st *Store) sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (st *Store) userKey(uid string) string {
	return userSessionPrefix + uid
}
