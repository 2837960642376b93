// Package service turns player messages into quiz moves and pushes the result back
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jbarratt/rpsquiz/game"
	"github.com/jbarratt/rpsquiz/notify"
	"github.com/jbarratt/rpsquiz/store"
	"github.com/jinzhu/copier"
)

// ErrBadRequest marks failures caused by what the player sent
var ErrBadRequest = errors.New("bad request")

// QuizSvc runs quizzes kept in a GameStore
type QuizSvc struct {
	store store.GameStore
	src   game.Source
	log   *slog.Logger
}

// NewQuizSvc returns a new quiz service. src must be safe for concurrent use.
func NewQuizSvc(st store.GameStore, src game.Source, log *slog.Logger) *QuizSvc {
	return &QuizSvc{
		store: st,
		src:   src,
		log:   log,
	}
}

// Dispatch handles one raw message from connectionID and sends the new state back.
// Bad requests are answered with an ErrorMessage and still returned as errors.
func (s *QuizSvc) Dispatch(ctx context.Context, n notify.Notifier, connectionID string, body []byte) (*GameState, error) {
	log := s.log.With("connection", connectionID)

	message := PlayerMessage{}
	if err := json.Unmarshal(body, &message); err != nil {
		log.Warn("unable to decode player message", "err", err)
		err = fmt.Errorf("%w: malformed message", ErrBadRequest)
		s.sendError(ctx, n, connectionID, err)
		return nil, err
	}

	state, err := s.Handle(ctx, message)
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			log.Info("rejected player message", "action", message.Action, "err", err)
			s.sendError(ctx, n, connectionID, err)
		} else {
			log.Error("unable to handle player message", "action", message.Action, "err", err)
		}
		return nil, err
	}

	b, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	if err := n.Send(ctx, connectionID, b); err != nil {
		log.Error("unable to send game state", "quiz", state.QuizID, "err", err)
		return state, err
	}
	return state, nil
}

func (s *QuizSvc) sendError(ctx context.Context, n notify.Notifier, connectionID string, cause error) {
	b, err := json.Marshal(ErrorMessage{Error: cause.Error()})
	if err != nil {
		return
	}
	if err := n.Send(ctx, connectionID, b); err != nil {
		s.log.Warn("unable to send error", "connection", connectionID, "err", err)
	}
}

// Handle applies a decoded message and returns the quiz state to show
func (s *QuizSvc) Handle(ctx context.Context, message PlayerMessage) (*GameState, error) {
	switch strings.ToLower(message.Action) {
	case "new":
		return s.NewQuiz(ctx)
	case "play":
		return s.Play(ctx, message.QuizID, message.Play)
	case "restart":
		return s.Restart(ctx, message.QuizID)
	case "state":
		q, err := s.load(ctx, message.QuizID)
		if err != nil {
			return nil, err
		}
		return NewGameState(q)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrBadRequest, message.Action)
	}
}

// NewQuiz creates and stores a quiz with an unused ID
func (s *QuizSvc) NewQuiz(ctx context.Context) (*GameState, error) {
	id, err := s.newQuizID(ctx)
	if err != nil {
		return nil, err
	}
	q := game.NewQuiz(id, s.src)
	if err := s.store.Save(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("quiz started", "quiz", q.ID)
	return NewGameState(q)
}

// Play answers the current question of a stored quiz
func (s *QuizSvc) Play(ctx context.Context, quizID, play string) (*GameState, error) {
	move, err := game.ParseMove(play)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, err)
	}
	q, err := s.load(ctx, quizID)
	if err != nil {
		return nil, err
	}

	over, err := q.Play(move, s.src)
	if errors.Is(err, game.ErrGameOver) {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, err)
	}
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, q); err != nil {
		return nil, err
	}

	s.log.Info("quiz answered", "quiz", q.ID, "play", move.String(), "correct", q.LastCorrect,
		"score", q.State.Score, "rounds", q.State.RoundsPlayed, "over", over)
	return NewGameState(q)
}

// Restart resets a stored quiz
func (s *QuizSvc) Restart(ctx context.Context, quizID string) (*GameState, error) {
	q, err := s.load(ctx, quizID)
	if err != nil {
		return nil, err
	}
	q.Restart(s.src)
	if err := s.store.Save(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("quiz restarted", "quiz", q.ID)
	return NewGameState(q)
}

// Forget deletes quizzes whose connection has gone away
func (s *QuizSvc) Forget(ctx context.Context, quizIDs ...string) {
	for _, id := range quizIDs {
		if err := s.store.Delete(ctx, id); err != nil {
			s.log.Warn("unable to delete quiz", "quiz", id, "err", err)
		}
	}
}

func (s *QuizSvc) load(ctx context.Context, quizID string) (*game.Quiz, error) {
	if quizID == "" {
		return nil, fmt.Errorf("%w: missing quizId", ErrBadRequest)
	}
	q, err := s.store.Load(ctx, quizID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: no quiz %s", ErrBadRequest, quizID)
	}
	return q, err
}

func (s *QuizSvc) newQuizID(ctx context.Context) (string, error) {
	for i := 0; i < 3; i++ {
		id, err := game.GenerateRandomString(game.IDLength)
		if err != nil {
			return "", err
		}
		_, err = s.store.Load(ctx, id)
		// not found means this id is free to use
		if errors.Is(err, store.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	// if we can't find something in 3 tries something's wrong.
	return "", errors.New("unable to find unused quiz ID")
}

// NewGameState renders a quiz for the player
func NewGameState(q *game.Quiz) (*GameState, error) {
	gs := &GameState{}
	// same-named fields of the round state: opponent, objective and counters
	if err := copier.Copy(gs, &q.State); err != nil {
		return nil, fmt.Errorf("rendering quiz %s: %w", q.ID, err)
	}

	gs.QuizID = q.ID
	gs.TotalRounds = game.TotalRounds
	gs.Round = q.State.RoundsPlayed + 1
	if gs.Round > game.TotalRounds {
		gs.Round = game.TotalRounds
	}
	gs.OpponentEmoji = q.State.OpponentMove.Emoji()
	gs.Prompt = fmt.Sprintf("You are up against %s. What do you play in order to %s?",
		gs.OpponentEmoji, q.State.Objective)
	for _, m := range game.Moves() {
		gs.Choices = append(gs.Choices, Choice{Move: m, Emoji: m.Emoji()})
	}
	if q.Answered {
		gs.LastPlay = q.LastPlay.String()
		gs.LastCorrect = q.LastCorrect
		gs.RoundSummary = q.Summary
	}
	if q.State.IsGameOver() {
		gs.GameOver = true
		gs.Message = q.FinalMessage()
	}
	return gs, nil
}
