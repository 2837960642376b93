package game

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// scripted replays a fixed list of draws, then keeps returning zero
type scripted struct {
	vals []int
	pos  int
}

func (s *scripted) Intn(n int) int {
	if s.pos >= len(s.vals) {
		return 0
	}
	v := s.vals[s.pos] % n
	s.pos++
	return v
}

func TestDefeats(t *testing.T) {
	beats, how := Defeats(Rock, Paper)
	if beats {
		t.Errorf("rock should not beat paper")
	}
	beats, how = Defeats(Paper, Rock)
	if !beats {
		t.Errorf("paper should beat rock")
	}
	if !strings.Contains(how, "cover") {
		t.Errorf("paper should cover rock")
	}
	if _, how = Defeats(Scissors, Scissors); how != "ties" {
		t.Errorf("same moves should tie, got %q", how)
	}
}

func TestCycle(t *testing.T) {
	beatenBy := map[Move]Move{Rock: Paper, Paper: Scissors, Scissors: Rock}
	for m, want := range beatenBy {
		if got := m.BeatenBy(); got != want {
			t.Errorf("%s should be beaten by %s, got %s", m, want, got)
		}
		if got := want.Beats(); got != m {
			t.Errorf("%s should beat %s, got %s", want, m, got)
		}
	}
}

func TestRequiredMove(t *testing.T) {
	for _, m := range Moves() {
		win := RequiredMove(m, Win)
		lose := RequiredMove(m, Lose)
		if win == lose {
			t.Errorf("win and lose answers against %s should differ", m)
		}
		if win == m || lose == m {
			t.Errorf("answers against %s should never tie", m)
		}
		if beats, _ := Defeats(win, m); !beats {
			t.Errorf("%s should beat %s", win, m)
		}
		if beats, _ := Defeats(m, lose); !beats {
			t.Errorf("%s should beat %s", m, lose)
		}
		if RequiredMove(m, Win) != win {
			t.Errorf("RequiredMove should be stable")
		}
	}
	if got := RequiredMove(Rock, Win); got != Paper {
		t.Errorf("rock/win should need paper, got %s", got)
	}
	if got := RequiredMove(Scissors, Lose); got != Paper {
		t.Errorf("scissors/lose should need paper, got %s", got)
	}
}

func TestSubmitMoveScoring(t *testing.T) {
	src := &scripted{}
	s := RoundState{OpponentMove: Rock, Objective: Win}

	next, over, err := SubmitMove(s, Paper, src)
	if err != nil || over {
		t.Fatalf("unexpected result: over=%v err=%v", over, err)
	}
	if next.Score != 1 || next.RoundsPlayed != 1 {
		t.Errorf("paper against rock to win should score: %+v", next)
	}
	if next.Objective != Lose {
		t.Errorf("objective should alternate: %+v", next)
	}

	for _, wrong := range []Move{Rock, Scissors} {
		next, _, _ = SubmitMove(s, wrong, src)
		if next.Score != 0 || next.RoundsPlayed != 1 {
			t.Errorf("%s should not score: %+v", wrong, next)
		}
	}

	s = RoundState{OpponentMove: Scissors, Objective: Lose}
	next, _, _ = SubmitMove(s, Paper, src)
	if next.Score != 1 {
		t.Errorf("paper against scissors to lose should score: %+v", next)
	}
}

func TestSubmitMoveInvalid(t *testing.T) {
	s := RoundState{OpponentMove: Rock, Objective: Win, RoundsPlayed: 3, Score: 2}
	next, _, err := SubmitMove(s, Move(7), &scripted{})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
	if next != s {
		t.Errorf("state should not change: %+v", next)
	}
}

func TestFullGame(t *testing.T) {
	src := NewSeededSource(42)
	s := NewRound(src)
	if s.RoundsPlayed != 0 || s.Score != 0 || s.Phase() != Playing {
		t.Fatalf("bad fresh state %+v", s)
	}

	var over bool
	var err error
	for i := 1; i <= TotalRounds; i++ {
		if over {
			t.Fatalf("game ended early at round %d", i)
		}
		s, over, err = SubmitMove(s, s.Required(), src)
		if err != nil {
			t.Fatalf("round %d: %s", i, err)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("round %d: %s", i, err)
		}
	}
	if !over || s.Phase() != GameOver {
		t.Fatalf("game should be over after %d rounds: %+v", TotalRounds, s)
	}
	if s.Score != TotalRounds {
		t.Errorf("all correct answers should score %d, got %d", TotalRounds, s.Score)
	}

	frozen := s
	s, over, err = SubmitMove(s, Rock, src)
	if !errors.Is(err, ErrGameOver) || !over || s != frozen {
		t.Errorf("moves after the last round should be rejected: %+v %v", s, err)
	}

	s = Reset(src)
	if s.Score != 0 || s.RoundsPlayed != 1 || s.Phase() != Playing {
		t.Errorf("reset should load the first round: %+v", s)
	}
}

func TestRestartedGameLength(t *testing.T) {
	src := NewSeededSource(3)
	s := Reset(src)
	var over bool
	var err error
	for i := 1; i <= TotalRounds-1; i++ {
		if over {
			t.Fatalf("restarted game ended after %d submissions", i-1)
		}
		s, over, err = SubmitMove(s, s.Required(), src)
		if err != nil {
			t.Fatalf("submission %d: %s", i, err)
		}
	}
	if !over || s.Phase() != GameOver {
		t.Fatalf("restarted game should end after %d submissions: %+v", TotalRounds-1, s)
	}
	if s.Score != TotalRounds-1 {
		t.Errorf("all correct answers after a restart should score %d, got %d", TotalRounds-1, s.Score)
	}
}

func TestLastRoundKeepsQuestion(t *testing.T) {
	s := RoundState{OpponentMove: Paper, Objective: Lose, RoundsPlayed: TotalRounds - 1, Score: 4}
	next, over, err := SubmitMove(s, Rock, &scripted{vals: []int{2}})
	if err != nil || !over {
		t.Fatalf("should finish: over=%v err=%v", over, err)
	}
	if next.OpponentMove != Paper || next.Objective != Lose || next.Score != 5 {
		t.Errorf("terminal state should keep the last question: %+v", next)
	}
}

func TestScoreInvariant(t *testing.T) {
	src := NewSeededSource(7)
	moves := Moves()
	s := NewRound(src)
	for i := 0; i < 50; i++ {
		next, _, err := SubmitMove(s, moves[i%len(moves)], src)
		if errors.Is(err, ErrGameOver) {
			s = Reset(src)
			continue
		}
		s = next
		if s.Score < 0 || s.Score > s.RoundsPlayed || s.RoundsPlayed > TotalRounds {
			t.Fatalf("invariant broken: %+v", s)
		}
	}
}

func TestNewRoundDraws(t *testing.T) {
	s := NewRound(&scripted{vals: []int{2, 1}})
	if s.OpponentMove != Scissors || s.Objective != Win {
		t.Errorf("unexpected draw %+v", s)
	}
}

func TestParseMove(t *testing.T) {
	cases := map[string]Move{"rock": Rock, " Paper ": Paper, "s": Scissors, "2": Paper}
	for in, want := range cases {
		got, err := ParseMove(in)
		if err != nil || got != want {
			t.Errorf("ParseMove(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseMove("lizard"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("lizard should not parse: %v", err)
	}
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		M Move      `json:"m"`
		O Objective `json:"o"`
	}{Scissors, Win})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"m":"scissors","o":"win"}` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(Rock, Paper); got != "paper covers rock" {
		t.Errorf("got %q", got)
	}
	if got := Summary(Paper, Rock); got != "paper covers rock" {
		t.Errorf("got %q", got)
	}
	if got := Summary(Rock, Rock); got != "both played rock" {
		t.Errorf("got %q", got)
	}
}

func TestQuiz(t *testing.T) {
	q := NewQuiz("", &scripted{vals: []int{0, 1}})
	if len(q.ID) != IDLength {
		t.Errorf("expected generated id, got %q", q.ID)
	}
	if q.State.OpponentMove != Rock || q.State.Objective != Win {
		t.Fatalf("unexpected first question %+v", q.State)
	}
	over, err := q.Play(Paper, &scripted{})
	if err != nil || over {
		t.Fatalf("play failed: %v %v", over, err)
	}
	if !q.Answered || !q.LastCorrect || q.State.Score != 1 {
		t.Errorf("expected a correct answer: %+v", q)
	}
	if !strings.Contains(q.Summary, "paper covers rock") {
		t.Errorf("unexpected summary %q", q.Summary)
	}
	q.Restart(&scripted{})
	if q.Answered || q.State.RoundsPlayed != 1 || q.State.Score != 0 {
		t.Errorf("restart should clear the game: %+v", q)
	}
	if q.FinalMessage() != "Your final score is 0." {
		t.Errorf("unexpected message %q", q.FinalMessage())
	}
}
