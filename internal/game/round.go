// internal/game/round.go
//
// Round engine: one hidden pair, one selection, one outcome.
//
// Validation rules for Select:
//   - Word must resolve to a catalog member through the round's Lookup.
//   - Word must not already be selected this round.
//   - Selection must not already be full.
//
// Reaching PairSize selections evaluates the round immediately.
package game

import "fmt"

// Lookup maps player input to a catalog word.
type Lookup func(word string) (string, bool)

// ExactLookup accepts only exact spellings from words.
func ExactLookup(words []string) Lookup {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return func(word string) (string, bool) {
		_, ok := set[word]
		return word, ok
	}
}

// Round owns the hidden pair and the player's selection for the current round.
type Round struct {
	words     []string
	src       Source
	lookup    Lookup
	hidden    HiddenPair
	selection []string
	outcome   *Outcome
}

// NewRound returns a round bound to words. Start must be called before Select.
// A nil src uses CryptoSource; a nil lookup uses ExactLookup(words).
func NewRound(words []string, src Source, lookup Lookup) *Round {
	if src == nil {
		src = CryptoSource
	}
	if lookup == nil {
		lookup = ExactLookup(words)
	}
	return &Round{words: append([]string(nil), words...), src: src, lookup: lookup}
}

// Start draws a new hidden pair and clears the selection.
//
// Draws are independent and uniform; a draw equal to an already chosen word
// is thrown away and retried.
func (r *Round) Start() HiddenPair {
	var pair HiddenPair
	n := 0
	for n < PairSize {
		w := r.words[r.src.Intn(len(r.words))]
		if n > 0 && pair[0] == w {
			continue
		}
		pair[n] = w
		n++
	}
	r.hidden = pair
	r.selection = make([]string, 0, PairSize)
	r.outcome = nil
	return pair
}

// Hidden returns the current pair.
func (r *Round) Hidden() HiddenPair { return r.hidden }

// Selected returns a copy of the selection so far.
func (r *Round) Selected() []string {
	return append([]string(nil), r.selection...)
}

// Select appends word to the selection unless it is invalid.
// It returns the selection length and whether the word was rejected.
func (r *Round) Select(word string) (int, bool) {
	if len(r.selection) >= PairSize {
		return len(r.selection), true
	}
	w, ok := r.lookup(word)
	if !ok {
		return len(r.selection), true
	}
	for _, s := range r.selection {
		if s == w {
			return len(r.selection), true
		}
	}
	r.selection = append(r.selection, w)
	if r.IsComplete() {
		r.evaluate()
	}
	return len(r.selection), false
}

// IsComplete reports whether the selection is full.
func (r *Round) IsComplete() bool { return len(r.selection) == PairSize }

// Evaluate scores the full selection against the hidden pair.
// Repeated calls before the next Start return the same outcome.
func (r *Round) Evaluate() (Outcome, error) {
	if !r.IsComplete() {
		return Outcome{}, fmt.Errorf("evaluate with %d of %d selections: %w", len(r.selection), PairSize, ErrRoundIncomplete)
	}
	return r.evaluate(), nil
}

// evaluate scores a full selection once and caches the outcome.
func (r *Round) evaluate() Outcome {
	if r.outcome != nil {
		return *r.outcome
	}
	correct := 0
	for _, w := range r.selection {
		if r.hidden.Contains(w) {
			correct++
		}
	}
	o := Outcome{CorrectCount: correct, Message: messageFor(correct)}
	r.outcome = &o
	return o
}

func messageFor(correct int) string {
	switch correct {
	case 2:
		return MessageBoth
	case 1:
		return MessageOne
	default:
		return MessageNone
	}
}
