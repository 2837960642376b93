package game

import (
	"errors"
	"fmt"
)

// TotalRounds is the number of questions in one game
const TotalRounds = 10

// ErrGameOver is returned when a move is submitted after the last round
var ErrGameOver = errors.New("game is over, reset to play again")

// Phase is where a RoundState sits in the game
type Phase int

const (
	Playing Phase = iota
	GameOver
)

func (p Phase) String() string {
	if p == GameOver {
		return "game over"
	}
	return "playing"
}

// RoundState is the whole of a quiz game in progress
type RoundState struct {
	OpponentMove Move
	Objective    Objective
	RoundsPlayed int
	Score        int
}

// Phase reports whether the game can still be played
func (s RoundState) Phase() Phase {
	if s.RoundsPlayed >= TotalRounds {
		return GameOver
	}
	return Playing
}

// IsGameOver is true once every round has been played
func (s RoundState) IsGameOver() bool {
	return s.Phase() == GameOver
}

// Required is the move that answers the current question
func (s RoundState) Required() Move {
	return RequiredMove(s.OpponentMove, s.Objective)
}

// Validate checks the counters are within bounds
func (s RoundState) Validate() error {
	switch {
	case !s.OpponentMove.Valid():
		return fmt.Errorf("%w: opponent %d", ErrInvalidMove, int(s.OpponentMove))
	case s.RoundsPlayed < 0 || s.RoundsPlayed > TotalRounds:
		return fmt.Errorf("rounds played %d out of range", s.RoundsPlayed)
	case s.Score < 0 || s.Score > s.RoundsPlayed:
		return fmt.Errorf("score %d out of range for %d rounds", s.Score, s.RoundsPlayed)
	}
	return nil
}

// NewRound starts a game against a random opponent move with a random objective
func NewRound(src Source) RoundState {
	return RoundState{
		OpponentMove: randomMove(src),
		Objective:    randomObjective(src),
	}
}

// RequiredMove returns the move that beats opponent when the player must win,
// otherwise the move that opponent beats
func RequiredMove(opponent Move, objective Objective) Move {
	if objective == Win {
		return opponent.BeatenBy()
	}
	return opponent.Beats()
}

// SubmitMove scores the player's answer and moves on to the next question.
// After the last round the opponent move and objective are left alone and
// further submissions fail with ErrGameOver until Reset.
func SubmitMove(state RoundState, player Move, src Source) (RoundState, bool, error) {
	if !player.Valid() {
		return state, state.IsGameOver(), fmt.Errorf("%w: %d", ErrInvalidMove, int(player))
	}
	if state.IsGameOver() {
		return state, true, ErrGameOver
	}

	if player == state.Required() {
		state.Score++
	}
	state.RoundsPlayed++

	if state.RoundsPlayed == TotalRounds {
		return state, true, nil
	}
	state.OpponentMove = randomMove(src)
	state.Objective = !state.Objective
	return state, false, nil
}

// Reset clears the score and counter and then asks the first question,
// which counts it as played: the result has RoundsPlayed == 1.
func Reset(src Source) RoundState {
	return RoundState{
		OpponentMove: randomMove(src),
		Objective:    randomObjective(src),
		RoundsPlayed: 1,
	}
}
