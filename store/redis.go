package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jbarratt/rpsquiz/game"
	redis "github.com/redis/go-redis/v9"
)

// Redis keeps quizzes as JSON values under quiz:<id>, expiring after ttl
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis wraps an existing client
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// DialRedis connects and pings the server
func DialRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedis(rdb, ttl), nil
}

func redisKey(quizID string) string {
	return "quiz:" + quizID
}

// quizRecord is the stored shape of a quiz
type quizRecord struct {
	ID           string         `json:"id"`
	OpponentMove game.Move      `json:"opponentMove"`
	Objective    game.Objective `json:"objective"`
	RoundsPlayed int            `json:"roundsPlayed"`
	Score        int            `json:"score"`
	Answered     bool           `json:"answered"`
	LastPlay     game.Move      `json:"lastPlay"`
	LastCorrect  bool           `json:"lastCorrect"`
	Summary      string         `json:"summary,omitempty"`
}

// Load returns the quiz or ErrNotFound once it has expired
func (s *Redis) Load(ctx context.Context, quizID string) (*game.Quiz, error) {
	b, err := s.rdb.Get(ctx, redisKey(quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching quiz %s: %w", quizID, err)
	}

	var rec quizRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("reading quiz record %s: %w", quizID, err)
	}
	q := &game.Quiz{
		ID: rec.ID,
		State: game.RoundState{
			OpponentMove: rec.OpponentMove,
			Objective:    rec.Objective,
			RoundsPlayed: rec.RoundsPlayed,
			Score:        rec.Score,
		},
		Answered:    rec.Answered,
		LastPlay:    rec.LastPlay,
		LastCorrect: rec.LastCorrect,
		Summary:     rec.Summary,
	}
	if err := q.State.Validate(); err != nil {
		return nil, fmt.Errorf("quiz %s: %w", quizID, err)
	}
	return q, nil
}

// Save writes the quiz and refreshes its expiry
func (s *Redis) Save(ctx context.Context, q *game.Quiz) error {
	b, err := json.Marshal(quizRecord{
		ID:           q.ID,
		OpponentMove: q.State.OpponentMove,
		Objective:    q.State.Objective,
		RoundsPlayed: q.State.RoundsPlayed,
		Score:        q.State.Score,
		Answered:     q.Answered,
		LastPlay:     q.LastPlay,
		LastCorrect:  q.LastCorrect,
		Summary:      q.Summary,
	})
	if err != nil {
		return fmt.Errorf("encoding quiz %s: %w", q.ID, err)
	}
	if err := s.rdb.Set(ctx, redisKey(q.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing quiz %s: %w", q.ID, err)
	}
	return nil
}

// Delete removes a quiz, missing IDs are not an error
func (s *Redis) Delete(ctx context.Context, quizID string) error {
	if err := s.rdb.Del(ctx, redisKey(quizID)).Err(); err != nil {
		return fmt.Errorf("deleting quiz %s: %w", quizID, err)
	}
	return nil
}

// Close releases the client
func (s *Redis) Close() error {
	return s.rdb.Close()
}
