// internal/presenter/presenter.go
//
// Presenter drives the game core from the outside world.
// Responsibilities:
//   - Serialize commands (HTTP, WebSocket) and timer firings into the core.
//   - Schedule the short round-reset and the long session-reset delays.
//   - Fan events out to subscribed sinks.
//   - Hand finished sessions to the history recorder.
//
// At most one reset task is pending. Every scheduled task carries the
// generation it was scheduled in; StartSession bumps the generation and
// cancels the pending task, so a late firing is a no-op.

package presenter

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/psychic/internal/game"
	"github.com/robalobadob/psychic/internal/history"
	"github.com/robalobadob/psychic/internal/schedule"
)

const (
	DefaultRoundDelay   = 2 * time.Second
	DefaultSessionDelay = 3 * time.Second

	recordTimeout = 5 * time.Second
)

// Sink receives core events. Publish runs with the presenter locked, so
// sinks see events in the order they happened; it must not block or call
// back into the presenter.
type Sink interface {
	Publish(ev game.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev game.Event)

func (f SinkFunc) Publish(ev game.Event) { f(ev) }

// Recorder stores finished sessions. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, r history.Result) error
}

// Options tunes a Presenter. Zero values take defaults.
type Options struct {
	RoundDelay   time.Duration
	SessionDelay time.Duration
	Recorder     Recorder
	Now          func() time.Time
}

// Presenter is safe for concurrent use.
type Presenter struct {
	mu      sync.Mutex
	game    *game.Game
	sched   schedule.Scheduler
	opts    Options
	sinks   []Sink
	opened  bool
	gen     uint64
	pending schedule.Cancel // nil when nothing is scheduled

	sessionID string
	startedAt time.Time
}

// New wraps g. A nil scheduler uses wall-clock timers.
func New(g *game.Game, sched schedule.Scheduler, opts Options) *Presenter {
	if sched == nil {
		sched = schedule.Clock{}
	}
	if opts.RoundDelay == 0 {
		opts.RoundDelay = DefaultRoundDelay
	}
	if opts.SessionDelay == 0 {
		opts.SessionDelay = DefaultSessionDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Presenter{game: g, sched: sched, opts: opts}
}

// Subscribe adds a sink for all later events.
func (p *Presenter) Subscribe(s Sink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sinks = append(p.sinks, s)
}

// Open emits CatalogReady. Only the first call publishes.
func (p *Presenter) Open() game.CatalogReady {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev := p.game.Catalog()
	if !p.opened {
		p.opened = true
		log.Info().Strs("words", ev.Words).Msg("catalog ready")
		p.publishLocked(ev)
	}
	return ev
}

// Catalog returns the vocabulary event without publishing it.
func (p *Presenter) Catalog() game.CatalogReady {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.game.Catalog()
}

// StartSession resets everything and begins round one. Any pending reset
// is abandoned. The returned event carries the new session's ID.
func (p *Presenter) StartSession() game.SessionReset {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
	ev := p.game.StartSession()
	p.beginSessionLocked()
	ev.SessionID = p.sessionID
	log.Info().Str("session", p.sessionID).Msg("session started")
	log.Debug().Str("session", p.sessionID).Strs("hidden", ev.HiddenPair[:]).Msg("hidden pair drawn")
	p.publishLocked(ev)
	return ev
}

// Submit forwards a selection. When it completes a round, the outcome is
// published and the matching reset is scheduled.
func (p *Presenter) Submit(word string) (game.Selection, *game.RoundEvaluated) {
	p.mu.Lock()
	sel, ev := p.game.Submit(word)
	if ev == nil {
		p.mu.Unlock()
		if sel.Rejected {
			log.Debug().Str("word", word).Int("count", sel.Count).Msg("selection rejected")
		}
		return sel, nil
	}

	log.Info().
		Str("session", p.sessionID).
		Int("correct", ev.CorrectCount).
		Int("score", ev.Score).
		Int("remaining", ev.Remaining).
		Msg("round evaluated")
	p.publishLocked(*ev)

	var finished *history.Result
	if ev.SessionComplete {
		finished = &history.Result{
			ID:          p.sessionID,
			Score:       ev.Score,
			Rounds:      game.Rounds,
			RoundCounts: p.game.RoundCounts(),
			StartedAt:   p.startedAt,
			FinishedAt:  p.opts.Now(),
		}
		p.scheduleLocked(p.opts.SessionDelay, p.game.ResetSession)
	} else {
		p.scheduleLocked(p.opts.RoundDelay, p.game.NextRound)
	}
	p.mu.Unlock()

	if finished != nil {
		p.record(*finished)
	}
	return sel, ev
}

// Snapshot returns the current read-only view.
func (p *Presenter) Snapshot() game.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.game.Snapshot()
}

// Pending reports whether a reset is scheduled.
func (p *Presenter) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// SessionID identifies the current session; empty before the first start.
func (p *Presenter) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessionID
}

// Close abandons any pending reset.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
}

func (p *Presenter) scheduleLocked(delay time.Duration, step func() (game.SessionReset, error)) {
	p.cancelLocked()
	gen := p.gen
	p.pending = p.sched.Schedule(delay, func() { p.fire(gen, step) })
}

// fire runs a scheduled reset unless it was superseded.
func (p *Presenter) fire(gen uint64, step func() (game.SessionReset, error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.pending == nil {
		return
	}
	p.pending = nil
	p.gen++

	ev, err := step()
	if err != nil {
		log.Warn().Err(err).Str("session", p.sessionID).Msg("scheduled reset skipped")
		return
	}
	if ev.Kind == game.ResetSession {
		p.beginSessionLocked()
		log.Info().Str("session", p.sessionID).Msg("session reset")
	}
	ev.SessionID = p.sessionID
	log.Debug().Str("session", p.sessionID).Strs("hidden", ev.HiddenPair[:]).Msg("hidden pair drawn")
	p.publishLocked(ev)
}

func (p *Presenter) cancelLocked() {
	p.gen++
	if p.pending != nil {
		p.pending()
		p.pending = nil
	}
}

func (p *Presenter) beginSessionLocked() {
	p.sessionID = uuid.NewString()
	p.startedAt = p.opts.Now()
}

func (p *Presenter) publishLocked(ev game.Event) {
	for _, s := range p.sinks {
		s.Publish(ev)
	}
}

func (p *Presenter) record(r history.Result) {
	if p.opts.Recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := p.opts.Recorder.Record(ctx, r); err != nil {
		log.Warn().Err(err).Str("session", r.ID).Msg("record session")
		return
	}
	log.Info().Str("session", r.ID).Int("score", r.Score).Msg("session recorded")
}
