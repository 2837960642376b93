// Package console plays the quiz in a terminal
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jbarratt/rpsquiz/game"
)

// Console renders a quiz to out and reads answers from in, one per line
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	src game.Source
	log *slog.Logger

	Quiz *game.Quiz
}

// New sets up a console with a fresh quiz
func New(in io.Reader, out io.Writer, src game.Source, log *slog.Logger) *Console {
	return &Console{
		in:   bufio.NewScanner(in),
		out:  out,
		src:  src,
		log:  log,
		Quiz: game.NewQuiz("", src),
	}
}

// Run plays until the input ends, the player types quit,
// or declines to restart after a game. ctx is checked between answers.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Random 🪨📄✂️")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.ask()

		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		if line == "quit" || line == "q!" {
			return nil
		}
		move, err := game.ParseMove(line)
		if err != nil {
			fmt.Fprintf(c.out, "Pick one of %s.\n", choices())
			continue
		}

		over, err := c.Quiz.Play(move, c.src)
		if err != nil {
			return err
		}
		c.log.Debug("answered", "quiz", c.Quiz.ID, "play", move.String(), "correct", c.Quiz.LastCorrect)
		c.verdict()

		if !over {
			continue
		}
		fmt.Fprintln(c.out, "Game Over")
		fmt.Fprintln(c.out, c.Quiz.FinalMessage())
		fmt.Fprint(c.out, "Restart? [y/N] ")
		line, ok = c.readLine()
		if !ok || (line != "y" && line != "yes") {
			return c.in.Err()
		}
		c.Quiz.Restart(c.src)
	}
}

func (c *Console) ask() {
	s := c.Quiz.State
	fmt.Fprintf(c.out, "\nYou are up against %s.\n", s.OpponentMove.Emoji())
	fmt.Fprintf(c.out, "What do you play in order to %s?\n", s.Objective)
	fmt.Fprintf(c.out, "%s > ", choices())
}

func (c *Console) verdict() {
	if c.Quiz.LastCorrect {
		fmt.Fprint(c.out, "Correct! ")
	} else {
		fmt.Fprint(c.out, "Wrong. ")
	}
	fmt.Fprintf(c.out, "Score: %d\n", c.Quiz.State.Score)
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(c.in.Text())), true
}

func choices() string {
	var parts []string
	for i, m := range game.Moves() {
		parts = append(parts, fmt.Sprintf("%d) %s %s", i+1, m.Emoji(), m))
	}
	return strings.Join(parts, "  ")
}
