// internal/game/engine.go
//
// Session state machine for the word-pair game.
// Responsibilities:
//   - Start sessions and rounds (tracker reset, fresh hidden pair).
//   - Forward selections to the round while a round is live; ignore them otherwise.
//   - Record each evaluated round exactly once and detect session completion.
//   - Accept the round-reset and session-reset signals a presenter sends after its delays.
//
// Phase transitions:
//
//	idle ──StartSession──▶ in_round ──2nd selection──▶ round_evaluated ──NextRound──▶ in_round
//	                                        │
//	                                        └─(5th round)─▶ session_complete ──ResetSession──▶ in_round
//
// StartSession is accepted from every phase.
//
// Game is not safe for concurrent use; the presenter serializes access.
package game

import "fmt"

// Game owns one Round and one Tracker.
type Game struct {
	words   []string
	round   *Round
	tracker Tracker
	phase   Phase
	last    *RoundEvaluated
}

// Option configures a Game.
type Option func(*options)

type options struct {
	lookup Lookup
}

// WithLookup sets how selections are resolved to catalog words.
// The default accepts exact spellings only.
func WithLookup(l Lookup) Option {
	return func(o *options) { o.lookup = l }
}

// New constructs an idle game over words. A nil src uses CryptoSource.
func New(words []string, src Source, opts ...Option) *Game {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Game{
		words: append([]string(nil), words...),
		round: NewRound(words, src, o.lookup),
		phase: PhaseIdle,
	}
}

// Catalog returns the startup event carrying the vocabulary.
func (g *Game) Catalog() CatalogReady {
	return CatalogReady{Words: append([]string(nil), g.words...)}
}

// Phase reports the current state machine position.
func (g *Game) Phase() Phase { return g.phase }

// StartSession resets the tracker and begins round one.
func (g *Game) StartSession() SessionReset {
	g.tracker.Reset()
	return g.beginRound(ResetStart)
}

// Submit forwards word to the round. Outside in_round it is rejected.
// The returned event is non-nil only when this selection completed the round.
func (g *Game) Submit(word string) (Selection, *RoundEvaluated) {
	if g.phase != PhaseInRound {
		return Selection{Count: len(g.round.Selected()), Rejected: true}, nil
	}
	n, rejected := g.round.Select(word)
	sel := Selection{Count: n, Rejected: rejected}
	if rejected || !g.round.IsComplete() {
		return sel, nil
	}

	out, err := g.round.Evaluate()
	if err != nil {
		// IsComplete was just checked.
		panic(err)
	}
	prog, err := g.tracker.Record(out)
	if err != nil {
		panic(err) // phase guards keep rounds ≤ Rounds
	}
	ev := &RoundEvaluated{
		CorrectCount:    out.CorrectCount,
		Message:         out.Message,
		Score:           prog.Score,
		Remaining:       prog.Remaining,
		SessionComplete: prog.SessionComplete,
		Selection:       g.round.Selected(),
	}
	if prog.SessionComplete {
		ev.Summary = fmt.Sprintf("You've completed %d tests! Final Score: %d", Rounds, prog.Score)
		g.phase = PhaseSessionComplete
	} else {
		g.phase = PhaseRoundEvaluated
	}
	g.last = ev
	return sel, ev
}

// Evaluate returns the current round's outcome; see Round.Evaluate.
func (g *Game) Evaluate() (Outcome, error) { return g.round.Evaluate() }

// NextRound is the round-reset signal sent after the short delay.
func (g *Game) NextRound() (SessionReset, error) {
	if g.phase != PhaseRoundEvaluated {
		return SessionReset{}, fmt.Errorf("next round from %s: %w", g.phase, ErrWrongPhase)
	}
	return g.beginRound(ResetRound), nil
}

// ResetSession is the session-reset signal sent after the long delay.
func (g *Game) ResetSession() (SessionReset, error) {
	if g.phase != PhaseSessionComplete {
		return SessionReset{}, fmt.Errorf("reset session from %s: %w", g.phase, ErrWrongPhase)
	}
	g.tracker.Reset()
	return g.beginRound(ResetSession), nil
}

// Progress reports the tracker state.
func (g *Game) Progress() Progress { return g.tracker.Progress() }

// RoundCounts returns the correct count of each round recorded this session.
func (g *Game) RoundCounts() []int { return g.tracker.Counts() }

// Hidden returns the live hidden pair. Only for logging and tests.
func (g *Game) Hidden() HiddenPair { return g.round.Hidden() }

// Snapshot returns a read-only view for presenters.
func (g *Game) Snapshot() Snapshot {
	p := g.tracker.Progress()
	s := Snapshot{
		Phase:           g.phase,
		Score:           p.Score,
		RoundsCompleted: p.RoundsCompleted,
		Remaining:       p.Remaining,
		Selection:       g.round.Selected(),
	}
	if s.Selection == nil {
		s.Selection = []string{}
	}
	if g.phase == PhaseRoundEvaluated || g.phase == PhaseSessionComplete {
		s.Last = g.last
	}
	return s
}

func (g *Game) beginRound(kind ResetKind) SessionReset {
	pair := g.round.Start()
	g.phase = PhaseInRound
	g.last = nil
	p := g.tracker.Progress()
	return SessionReset{Kind: kind, HiddenPair: pair, Phase: g.phase, Score: p.Score, Remaining: p.Remaining}
}
