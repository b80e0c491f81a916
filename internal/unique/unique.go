// Package unique hands out values that have not been handed out before
// within a named category.
package unique

import (
	"errors"
	"fmt"
)

// DefaultMaxAttempts is the retry budget used when callers pass a
// non-positive attempt count.
const DefaultMaxAttempts = 100

var ErrExhausted = errors.New("unique values exhausted")

// ExhaustedError is returned when no unseen value was produced within the
// attempt budget.
type ExhaustedError struct {
	Category string
	Unique   int
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to generate unique %s after %d attempts, generated %d unique values so far",
		e.Category, e.Attempts, e.Unique)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Generator tracks returned values per category. It is not safe for
// concurrent use.
type Generator struct {
	used map[string]map[any]struct{}
}

func New() *Generator {
	return &Generator{used: make(map[string]map[any]struct{})}
}

// Generate calls produce until it returns a value not yet seen in category,
// records it and returns it.
func Generate[T comparable](g *Generator, category string, maxAttempts int, produce func() T) (T, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	seen, ok := g.used[category]
	if !ok {
		seen = make(map[any]struct{})
		g.used[category] = seen
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		v := produce()
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		return v, nil
	}

	var zero T
	return zero, &ExhaustedError{Category: category, Unique: len(seen), Attempts: maxAttempts}
}

// Len returns how many values were handed out for category.
func (g *Generator) Len(category string) int {
	return len(g.used[category])
}

// Reset forgets every value of one category.
func (g *Generator) Reset(category string) {
	delete(g.used, category)
}

// ResetAll forgets every category.
func (g *Generator) ResetAll() {
	g.used = make(map[string]map[any]struct{})
}
