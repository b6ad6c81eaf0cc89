// internal/game/types.go
//
// Core type definitions for the word-pair guessing game.
// Defines:
//   - Phase: where the session state machine currently is.
//   - HiddenPair: the two words the player must find this round.
//   - Outcome: the evaluated result of one round.
//   - Progress: cumulative session state after a recorded round.
//   - Selection: result of one select command.
//   - Snapshot: read-only view for presenters (never includes the hidden pair).

package game

import "errors"

const (
	// Rounds is the fixed number of rounds in a session.
	Rounds = 5
	// PairSize is both the hidden pair size and the selection limit per round.
	PairSize = 2
)

// Round outcome messages, keyed by correct count.
const (
	MessageBoth = "You got both words right! Amazing!"
	MessageOne  = "You got one word right. Good job!"
	MessageNone = "Sorry, none of your selections were correct."
)

var (
	// ErrRoundIncomplete is returned by Evaluate before the selection is full.
	ErrRoundIncomplete = errors.New("round incomplete")
	// ErrWrongPhase is returned when a reset signal arrives in a phase that cannot take it.
	ErrWrongPhase = errors.New("wrong phase")
	// ErrSessionFull is returned when recording beyond the last round of a session.
	ErrSessionFull = errors.New("session already has all rounds recorded")
)

// Phase is the session state machine position.
type Phase string

const (
	PhaseIdle            Phase = "idle"             // no active round
	PhaseInRound         Phase = "in_round"         // selection length 0 or 1
	PhaseRoundEvaluated  Phase = "round_evaluated"  // outcome shown, awaiting round reset
	PhaseSessionComplete Phase = "session_complete" // 5th outcome shown, awaiting session reset
)

// HiddenPair holds two distinct catalog words.
type HiddenPair [PairSize]string

// Contains reports whether w is one of the pair.
func (p HiddenPair) Contains(w string) bool {
	return p[0] == w || p[1] == w
}

// Outcome is the result of evaluating a full selection.
type Outcome struct {
	CorrectCount int    `json:"correctCount"`
	Message      string `json:"message"`
}

// Progress is the tracker state after recording a round.
type Progress struct {
	Score           int  `json:"score"`
	RoundsCompleted int  `json:"roundsCompleted"`
	Remaining       int  `json:"remaining"`
	SessionComplete bool `json:"sessionComplete"`
}

// Selection is the result of a single select command.
type Selection struct {
	Count    int  `json:"count"`
	Rejected bool `json:"rejected"`
}

// Snapshot is a presenter-facing view of the game.
type Snapshot struct {
	Phase           Phase           `json:"phase"`
	Score           int             `json:"score"`
	RoundsCompleted int             `json:"roundsCompleted"`
	Remaining       int             `json:"remaining"`
	Selection       []string        `json:"selection"`
	Last            *RoundEvaluated `json:"last,omitempty"`
}
