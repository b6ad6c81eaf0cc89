package game

// Event is anything the core emits toward a presenter.
type Event interface {
	EventType() string
}

// CatalogReady is emitted once at startup with the ordered vocabulary.
type CatalogReady struct {
	Words []string `json:"words"`
}

// RoundEvaluated is emitted when a round's second selection lands.
type RoundEvaluated struct {
	CorrectCount    int      `json:"correctCount"`
	Message         string   `json:"message"`
	Score           int      `json:"score"`
	Remaining       int      `json:"remaining"`
	SessionComplete bool     `json:"sessionComplete"`
	Summary         string   `json:"summary,omitempty"` // set on the last round only
	Selection       []string `json:"selection"`
}

// ResetKind says what triggered a SessionReset.
type ResetKind string

const (
	ResetStart   ResetKind = "start"   // explicit startSession command
	ResetRound   ResetKind = "round"   // short delay after a normal round
	ResetSession ResetKind = "session" // long delay after the last round
)

// SessionReset is emitted whenever a new round begins.
// HiddenPair never leaves the process. SessionID is filled in by the presenter.
type SessionReset struct {
	Kind       ResetKind  `json:"kind"`
	HiddenPair HiddenPair `json:"-"`
	Phase      Phase      `json:"phase"`
	Score      int        `json:"score"`
	Remaining  int        `json:"remaining"`
	SessionID  string     `json:"sessionId,omitempty"`
}

func (CatalogReady) EventType() string   { return "catalog_ready" }
func (RoundEvaluated) EventType() string { return "round_evaluated" }
func (SessionReset) EventType() string   { return "session_reset" }
