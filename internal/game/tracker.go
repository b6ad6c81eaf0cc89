package game

import "fmt"

// Tracker accumulates score and round count across one session.
type Tracker struct {
	score  int
	rounds int
	counts []int // correct count per recorded round
}

// Reset zeroes the session.
func (t *Tracker) Reset() {
	t.score, t.rounds = 0, 0
	t.counts = t.counts[:0]
}

// Record folds one evaluated round into the session.
func (t *Tracker) Record(o Outcome) (Progress, error) {
	if t.rounds >= Rounds {
		return t.Progress(), fmt.Errorf("record round %d: %w", t.rounds+1, ErrSessionFull)
	}
	t.score += o.CorrectCount
	t.rounds++
	t.counts = append(t.counts, o.CorrectCount)
	return t.Progress(), nil
}

// Progress reports the current cumulative state.
func (t *Tracker) Progress() Progress {
	return Progress{
		Score:           t.score,
		RoundsCompleted: t.rounds,
		Remaining:       Rounds - t.rounds,
		SessionComplete: t.rounds == Rounds,
	}
}

// Counts returns the per-round correct counts recorded so far.
func (t *Tracker) Counts() []int {
	return append([]int(nil), t.counts...)
}
