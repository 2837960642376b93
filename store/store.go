// Package store keeps quizzes in progress between websocket messages
package store

import (
	"context"
	"errors"
	"io"

	"github.com/jbarratt/rpsquiz/game"
)

// ErrNotFound is returned when there is no quiz with the requested ID
var ErrNotFound = errors.New("quiz not found")

// GameStore interface declares what the service needs from storage
type GameStore interface {
	Load(ctx context.Context, quizID string) (*game.Quiz, error)
	Save(ctx context.Context, q *game.Quiz) error
	Delete(ctx context.Context, quizID string) error
}

// Close releases whatever connection the store holds. Stores without one are
// left alone.
func Close(s GameStore) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
