// internal/catalog/catalog.go
//
// Fixed word catalog for the game.
//
// Responsibilities:
//   - Load the embedded vocabulary exactly once (sync.Once).
//   - Validate it: exactly Size distinct words.
//   - Supply List to presenters and Canonical to the engine as its selection lookup.
//
// The catalog is immutable for the process lifetime. Callers receive copies.

package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/robalobadob/psychic/assets"
)

// Size is the number of words in the catalog.
const Size = 8

var (
	initOnce   sync.Once
	words      []string          // display order
	canonical  map[string]string // lowercase -> catalog spelling
	initialErr error
)

// Init loads and validates the embedded catalog.
// Safe to call repeatedly; later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		list, err := assets.CatalogList()
		if err != nil {
			initialErr = fmt.Errorf("catalog: read embedded list: %w", err)
			return
		}
		idx, err := index(list)
		if err != nil {
			initialErr = err
			return
		}
		words, canonical = list, idx
	})
	return initialErr
}

// index builds the case-insensitive lookup and enforces size and uniqueness.
func index(list []string) (map[string]string, error) {
	if len(list) != Size {
		return nil, fmt.Errorf("catalog: want %d words, got %d", Size, len(list))
	}
	m := make(map[string]string, len(list))
	for _, w := range list {
		k := strings.ToLower(w)
		if _, dup := m[k]; dup {
			return nil, fmt.Errorf("catalog: duplicate word %q", w)
		}
		m[k] = w
	}
	return m, nil
}

// List returns the catalog words in display order.
func List() []string {
	_ = Init()
	return append([]string(nil), words...)
}

// Canonical maps w to its catalog spelling ("fig " -> "Fig").
func Canonical(w string) (string, bool) {
	_ = Init()
	c, ok := canonical[strings.ToLower(strings.TrimSpace(w))]
	return c, ok
}
