package game

import (
	"errors"
	"reflect"
	"testing"
)

// fixedGame always hides Apple and Cherry.
func fixedGame() *Game {
	return New(testWords, &seqSource{vals: []int{0, 2}})
}

var picksFor = map[int][2]string{
	2: {"Apple", "Cherry"},
	1: {"Apple", "Date"},
	0: {"Fig", "Grape"},
}

func playRound(t *testing.T, g *Game, correct int) *RoundEvaluated {
	t.Helper()
	picks := picksFor[correct]
	if sel, ev := g.Submit(picks[0]); sel.Rejected || ev != nil {
		t.Fatalf("first pick: sel=%+v ev=%+v", sel, ev)
	}
	sel, ev := g.Submit(picks[1])
	if sel.Rejected || ev == nil {
		t.Fatalf("second pick: sel=%+v ev=%v", sel, ev)
	}
	if ev.CorrectCount != correct {
		t.Fatalf("correct = %d, want %d", ev.CorrectCount, correct)
	}
	return ev
}

func TestSubmitIgnoredWhileIdle(t *testing.T) {
	g := fixedGame()
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase = %s", g.Phase())
	}
	sel, ev := g.Submit("Apple")
	if !sel.Rejected || ev != nil || sel.Count != 0 {
		t.Fatalf("idle submit: sel=%+v ev=%v", sel, ev)
	}
}

func TestFullSession(t *testing.T) {
	g := fixedGame()
	start := g.StartSession()
	if start.Kind != ResetStart || start.Phase != PhaseInRound || start.Remaining != Rounds || start.HiddenPair != (HiddenPair{"Apple", "Cherry"}) {
		t.Fatalf("start = %+v", start)
	}

	counts := []int{2, 1, 0, 2, 1}
	score := 0
	for i, c := range counts {
		ev := playRound(t, g, c)
		score += c
		if ev.Score != score || ev.Remaining != Rounds-(i+1) {
			t.Fatalf("round %d: event = %+v", i+1, ev)
		}
		if i < len(counts)-1 {
			if g.Phase() != PhaseRoundEvaluated || ev.SessionComplete || ev.Summary != "" {
				t.Fatalf("round %d: phase=%s ev=%+v", i+1, g.Phase(), ev)
			}
			reset, err := g.NextRound()
			if err != nil {
				t.Fatalf("round %d: next: %v", i+1, err)
			}
			if reset.Kind != ResetRound || reset.Score != score {
				t.Fatalf("round %d: reset = %+v", i+1, reset)
			}
			continue
		}
		if !ev.SessionComplete || ev.Remaining != 0 || ev.Score != 6 {
			t.Fatalf("final event = %+v", ev)
		}
		if ev.Summary != "You've completed 5 tests! Final Score: 6" {
			t.Fatalf("summary = %q", ev.Summary)
		}
	}

	if g.Phase() != PhaseSessionComplete {
		t.Fatalf("phase = %s", g.Phase())
	}
	if !reflect.DeepEqual(g.RoundCounts(), counts) {
		t.Fatalf("counts = %v", g.RoundCounts())
	}
	if _, err := g.NextRound(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("NextRound after last round: %v", err)
	}

	reset, err := g.ResetSession()
	if err != nil {
		t.Fatalf("reset session: %v", err)
	}
	if reset.Kind != ResetSession || reset.Score != 0 || reset.Remaining != Rounds {
		t.Fatalf("session reset = %+v", reset)
	}
	if p := g.Progress(); p.Score != 0 || p.RoundsCompleted != 0 {
		t.Fatalf("progress after reset = %+v", p)
	}
	if g.Phase() != PhaseInRound {
		t.Fatalf("phase after reset = %s", g.Phase())
	}
}

func TestSubmitRejectedAfterEvaluation(t *testing.T) {
	g := fixedGame()
	g.StartSession()
	playRound(t, g, 2)
	sel, ev := g.Submit("Fig")
	if !sel.Rejected || ev != nil || sel.Count != 2 {
		t.Fatalf("submit in round_evaluated: sel=%+v ev=%v", sel, ev)
	}
	if p := g.Progress(); p.RoundsCompleted != 1 || p.Score != 2 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestResetSignalsOutOfPhase(t *testing.T) {
	g := fixedGame()
	if _, err := g.NextRound(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("NextRound idle: %v", err)
	}
	if _, err := g.ResetSession(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("ResetSession idle: %v", err)
	}
	g.StartSession()
	if _, err := g.NextRound(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("NextRound in round: %v", err)
	}
	playRound(t, g, 1)
	if _, err := g.ResetSession(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("ResetSession after round 1: %v", err)
	}
}

func TestStartSessionMidSessionResets(t *testing.T) {
	g := fixedGame()
	g.StartSession()
	playRound(t, g, 2)
	g.NextRound()
	g.Submit("Apple")

	g.StartSession()
	snap := g.Snapshot()
	if snap.Phase != PhaseInRound || snap.Score != 0 || snap.RoundsCompleted != 0 || len(snap.Selection) != 0 {
		t.Fatalf("snapshot after restart = %+v", snap)
	}
}

func TestEvaluateThroughGame(t *testing.T) {
	g := fixedGame()
	g.StartSession()
	if _, err := g.Evaluate(); !errors.Is(err, ErrRoundIncomplete) {
		t.Fatalf("evaluate empty: %v", err)
	}
	playRound(t, g, 1)
	a, _ := g.Evaluate()
	b, _ := g.Evaluate()
	if a != b || a.CorrectCount != 1 {
		t.Fatalf("evaluate = %+v / %+v", a, b)
	}
}

func TestSnapshotLastOnlyWhileEvaluated(t *testing.T) {
	g := fixedGame()
	g.StartSession()
	g.Submit("Apple")
	if s := g.Snapshot(); s.Last != nil || !reflect.DeepEqual(s.Selection, []string{"Apple"}) {
		t.Fatalf("in-round snapshot = %+v", s)
	}
	g.Submit("Banana")
	s := g.Snapshot()
	if s.Phase != PhaseRoundEvaluated || s.Last == nil || s.Last.CorrectCount != 1 {
		t.Fatalf("evaluated snapshot = %+v", s)
	}
	g.NextRound()
	if s := g.Snapshot(); s.Last != nil || len(s.Selection) != 0 {
		t.Fatalf("next-round snapshot = %+v", s)
	}
}

func TestCatalogEventIsCopy(t *testing.T) {
	g := fixedGame()
	ev := g.Catalog()
	ev.Words[0] = "Kiwi"
	if g.Catalog().Words[0] != "Apple" {
		t.Fatal("catalog event aliases game state")
	}
}
