package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidWeights = errors.New("invalid weight table")

const weightTolerance = 1e-9

// Choice is one label of a weighted table.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Weighted draws labels according to fixed probabilities. Tables are kept in
// declaration order and are never normalized.
type Weighted[T any] struct {
	choices    []Choice[T]
	cumulative []float64
}

func NewWeighted[T any](choices ...Choice[T]) (Weighted[T], error) {
	if len(choices) == 0 {
		return Weighted[T]{}, fmt.Errorf("%w: no choices", ErrInvalidWeights)
	}

	cumulative := make([]float64, len(choices))
	total := 0.0
	for i, c := range choices {
		if c.Weight < 0 || math.IsNaN(c.Weight) {
			return Weighted[T]{}, fmt.Errorf("%w: negative weight %v for %v", ErrInvalidWeights, c.Weight, c.Value)
		}
		total += c.Weight
		cumulative[i] = total
	}
	if math.Abs(total-1.0) > weightTolerance {
		return Weighted[T]{}, fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, total)
	}

	return Weighted[T]{choices: choices, cumulative: cumulative}, nil
}

// MustWeighted is NewWeighted for package level tables.
func MustWeighted[T any](choices ...Choice[T]) Weighted[T] {
	w, err := NewWeighted(choices...)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Weighted[T]) Pick(r *rand.Rand) T {
	u := r.Float64()
	for i, c := range w.cumulative {
		if u < c {
			return w.choices[i].Value
		}
	}
	return w.choices[len(w.choices)-1].Value
}

func (w Weighted[T]) Choices() []Choice[T] {
	return w.choices
}

// BoundedNormal draws from N(mean, stddev), truncates to an int and clamps it
// to [lo, hi].
func BoundedNormal(r *rand.Rand, mean, stddev float64, lo, hi int) int {
	v := int(r.NormFloat64()*stddev + mean)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between returns a uniform instant in [lo, hi). An empty or inverted
// interval yields lo.
func Between(r *rand.Rand, lo, hi time.Time) time.Time {
	if !hi.After(lo) {
		return lo
	}
	return lo.Add(time.Duration(r.Int63n(int64(hi.Sub(lo)))))
}

// SampleIndices returns k distinct indices of [0, n). k is clamped to [0, n].
func SampleIndices(r *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	return r.Perm(n)[:k]
}

// Chance reports true with probability p.
func Chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// IntBetween is uniform over the closed range [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Money is a uniform amount in [lo, hi] rounded to cents.
func Money(r *rand.Rand, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(Uniform(r, lo, hi)).Round(2)
}

func pick[T any](r *rand.Rand, s []T) T {
	return s[r.Intn(len(s))]
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func ptr[T any](v T) *T {
	return &v
}
