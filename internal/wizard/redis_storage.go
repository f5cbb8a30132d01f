package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freelancehub/brief-service/internal/brief"
)

const (
	sessionKeyPattern = "brief:session:%s"
	defaultDraftTTL   = 7 * 24 * time.Hour
)

// RedisStorage persists wizard session drafts in Redis, one key per session.
type RedisStorage struct {
	client *redis.Client
	log    *slog.Logger
	ttl    time.Duration
}

// NewRedisStorage initializes a Redis-backed Storage implementation. A
// non-positive ttl falls back to the default draft lifetime.
func NewRedisStorage(client *redis.Client, log *slog.Logger, ttl time.Duration) Storage {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}

	return &RedisStorage{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

// Load returns the stored draft or ErrSessionNotFound when absent. Persisted
// values are merged over the defaulted answer set, so fields added to the
// schema after the snapshot was written come back at their defaults. A
// missing or unknown step restores to the first step.
func (s *RedisStorage) Load(ctx context.Context, id string) (*Session, error) {
	key := sessionKey(id)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}

		s.log.Error("failed to load session draft", "session_id", id, "error", err)
		return nil, err
	}

	snap := snapshot{Values: brief.DefaultAnswers()}
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		s.log.Error("failed to decode session draft", "session_id", id, "error", err)
		return nil, err
	}

	session := &Session{
		ID:       id,
		Values:   snap.Values,
		Step:     snap.Step,
		hydrated: true,
	}
	if !IsValidStep(session.Step) {
		session.Step = FirstStep()
	}
	if ts, err := time.Parse(time.RFC3339, snap.Timestamp); err == nil {
		session.UpdatedAt = ts
	}

	return session, nil
}

// Save snapshots the session draft. Writes are last-write-wins across
// concurrent sessions on the same id, except that a strictly newer stored
// snapshot is never overwritten by an older one.
func (s *RedisStorage) Save(ctx context.Context, session *Session) error {
	if stored, err := s.Load(ctx, session.ID); err == nil {
		if stored.UpdatedAt.After(session.UpdatedAt) {
			s.log.Warn("skipping draft write, stored snapshot is newer",
				"session_id", session.ID,
				"stored_at", stored.UpdatedAt,
				"incoming_at", session.UpdatedAt)
			return nil
		}
	}

	session.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(snapshot{
		Values:    session.Values,
		Step:      session.Step,
		Timestamp: session.UpdatedAt.Format(time.RFC3339),
	})
	if err != nil {
		s.log.Error("failed to encode session draft", "session_id", session.ID, "error", err)
		return err
	}

	key := sessionKey(session.ID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Error("failed to save session draft", "session_id", session.ID, "error", err)
		return err
	}

	return nil
}

// Clear removes the stored draft for the given session id.
func (s *RedisStorage) Clear(ctx context.Context, id string) error {
	key := sessionKey(id)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Error("failed to clear session draft", "session_id", id, "error", err)
		return err
	}

	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPattern, id)
}
