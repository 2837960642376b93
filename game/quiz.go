package game

import "fmt"

// IDLength is the length of generated quiz IDs
const IDLength = 5

// Quiz holds one player's game along with the verdict on their last answer.
// It is owned by whatever is presenting the game.
type Quiz struct {
	ID          string
	State       RoundState
	Answered    bool
	LastPlay    Move
	LastCorrect bool
	Summary     string
}

// NewQuiz starts a fresh game. An empty id gets a random one.
func NewQuiz(id string, src Source) *Quiz {
	if id == "" {
		id, _ = GenerateRandomString(IDLength)
	}
	return &Quiz{
		ID:    id,
		State: NewRound(src),
	}
}

// Play answers the current question and reports whether the game is over
func (q *Quiz) Play(move Move, src Source) (bool, error) {
	prev := q.State
	next, over, err := SubmitMove(prev, move, src)
	if err != nil {
		return over, err
	}
	q.State = next
	q.Answered = true
	q.LastPlay = move
	q.LastCorrect = move == prev.Required()
	q.Summary = fmt.Sprintf("you played %s to %s against %s: %s",
		move, prev.Objective, prev.OpponentMove, Summary(prev.OpponentMove, move))
	return over, nil
}

// Restart throws the current game away and asks a new first question
func (q *Quiz) Restart(src Source) {
	q.State = Reset(src)
	q.Answered = false
	q.LastPlay = 0
	q.LastCorrect = false
	q.Summary = ""
}

// FinalMessage is the text shown when the game is over
func (q *Quiz) FinalMessage() string {
	return fmt.Sprintf("Your final score is %d.", q.State.Score)
}
