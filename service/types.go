package service

import (
	"strings"

	"github.com/jbarratt/rpsquiz/game"
)

// GameState is what gets sent to the player after every action.
//
// Round is the 1-based question being asked, RoundsPlayed+1 capped at
// TotalRounds. A restart counts as one played round with no score, so the
// first question after a restart is round 2 and the game ends after nine
// more answers.
type GameState struct {
	QuizID        string         `json:"quizId"`
	Round         int            `json:"round"`
	RoundsPlayed  int            `json:"roundsPlayed"`
	TotalRounds   int            `json:"totalRounds"`
	Score         int            `json:"score"`
	OpponentMove  game.Move      `json:"opponent"`
	OpponentEmoji string         `json:"opponentEmoji"`
	Objective     game.Objective `json:"objective"`
	Prompt        string         `json:"prompt"`
	Choices       []Choice       `json:"choices"`
	LastPlay      string         `json:"lastPlay,omitempty"`
	LastCorrect   bool           `json:"lastCorrect"`
	RoundSummary  string         `json:"roundSummary,omitempty"`
	GameOver      bool           `json:"gameOver"`
	Message       string         `json:"message,omitempty"`
}

// Choice is one of the buttons the player can press
type Choice struct {
	Move  game.Move `json:"move"`
	Emoji string    `json:"emoji"`
}

// PlayerMessage are what we get from the players
type PlayerMessage struct {
	Action string `json:"action"`
	QuizID string `json:"quizId"`
	Play   string `json:"play"`
}

// Mutates reports whether the action creates or changes a quiz
func (m PlayerMessage) Mutates() bool {
	switch strings.ToLower(m.Action) {
	case "new", "play", "restart":
		return true
	}
	return false
}

// ErrorMessage is sent back when a message can't be handled
type ErrorMessage struct {
	Error string `json:"error"`
}
