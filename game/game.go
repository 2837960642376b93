// Package game implements the core logic of the rock paper scissors quiz
package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Move is one of rock, paper or scissors.
// Each move is beaten by the next one in the cycle and beats the previous one.
type Move int

const (
	Rock Move = iota
	Paper
	Scissors
)

const numMoves = 3

var (
	// ErrInvalidMove is returned for anything outside of rock, paper and scissors
	ErrInvalidMove = errors.New("invalid move")

	names  = [numMoves]string{"rock", "paper", "scissors"}
	emojis = [numMoves]string{"🪨", "📄", "✂️"}

	// verbs is keyed by the winning move, it beats the move before it in the cycle
	verbs = [numMoves]string{"smashes", "covers", "cuts"}
)

// Moves returns every move in cycle order
func Moves() []Move {
	return []Move{Rock, Paper, Scissors}
}

// Valid returns true only if m is one of the three moves
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

func (m Move) String() string {
	if !m.Valid() {
		return "Move(" + strconv.Itoa(int(m)) + ")"
	}
	return names[m]
}

// Emoji returns the symbol used to display the move
func (m Move) Emoji() string {
	if !m.Valid() {
		return "?"
	}
	return emojis[m]
}

// BeatenBy returns the move that beats m
func (m Move) BeatenBy() Move {
	return (m + 1) % numMoves
}

// Beats returns the move that m beats
func (m Move) Beats() Move {
	return (m + numMoves - 1) % numMoves
}

// Defeats returns if first would beat second
// also returns the verb needed <first> covers <second>
// In the case of a tie, returns "ties" as the verb
func Defeats(first, second Move) (bool, string) {
	if !first.Valid() || !second.Valid() {
		return false, ""
	}
	if first == second {
		return false, "ties"
	}
	if first.Beats() == second {
		return true, verbs[first]
	}
	return false, ""
}

// Summary describes what happened when player went up against opponent
func Summary(opponent, player Move) string {
	if opponent == player {
		return fmt.Sprintf("both played %s", player)
	}
	if beats, how := Defeats(player, opponent); beats {
		return fmt.Sprintf("%s %s %s", player, how, opponent)
	}
	_, how := Defeats(opponent, player)
	return fmt.Sprintf("%s %s %s", opponent, how, player)
}

// ParseMove accepts a move name, its first letter or its 1-based position
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if s == name || s == name[:1] || s == strconv.Itoa(i+1) {
			return Move(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
}

// MarshalText encodes the move by name
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, ErrInvalidMove
	}
	return []byte(names[m]), nil
}

// UnmarshalText decodes a move name
func (m *Move) UnmarshalText(b []byte) error {
	mv, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}

// Objective is whether the player must win the round
type Objective bool

const (
	Lose Objective = false
	Win  Objective = true
)

func (o Objective) String() string {
	if o {
		return "win"
	}
	return "lose"
}

// MarshalJSON encodes the objective as "win" or "lose"
func (o Objective) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts "win", "lose" or a plain boolean
func (o *Objective) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*o = Objective(v)
		return nil
	}
	switch s {
	case "win":
		*o = Win
	case "lose":
		*o = Lose
	default:
		return fmt.Errorf("invalid objective %q", s)
	}
	return nil
}
