package store

import (
	"context"
	"sync"

	"github.com/jbarratt/rpsquiz/game"
)

// Memory is a process local GameStore
type Memory struct {
	mu      sync.Mutex
	quizzes map[string]game.Quiz
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{quizzes: make(map[string]game.Quiz)}
}

// Load returns a copy of the stored quiz
func (m *Memory) Load(_ context.Context, quizID string) (*game.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quizzes[quizID]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

// Save stores a copy of q
func (m *Memory) Save(_ context.Context, q *game.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = *q
	return nil
}

// Delete forgets a quiz, missing IDs are not an error
func (m *Memory) Delete(_ context.Context, quizID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quizzes, quizID)
	return nil
}

// Len is the number of stored quizzes
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.quizzes)
}
