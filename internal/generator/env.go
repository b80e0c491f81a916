// Package generator produces the synthetic records of every domain. Each
// generator reads identifiers registered by earlier phases and registers the
// identifiers it creates, so methods must be called in dependency order.
package generator

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/Rana718/demoseed/internal/registry"
	"github.com/Rana718/demoseed/internal/unique"
)

// Unique value categories.
const (
	CategoryEmployeeEmail = "employee_email"
	CategoryEmployeePhone = "employee_phone"
	CategoryCustomerEmail = "customer_email"
	CategoryCustomerPhone = "customer_phone"
)

// Env is the state shared by all generators of one run.
type Env struct {
	Registry *registry.Registry
	Rand     *rand.Rand
	Faker    *gofakeit.Faker
	Unique   *unique.Generator
	Now      time.Time
}

// NewEnv seeds both the sampling source and the faker from seed.
func NewEnv(reg *registry.Registry, seed int64, now time.Time) *Env {
	return &Env{
		Registry: reg,
		Rand:     rand.New(rand.NewSource(seed)),
		Faker:    gofakeit.New(seed),
		Unique:   unique.New(),
		Now:      now,
	}
}

// ID returns prefix-HEX where HEX is hexLen upper-case characters taken from
// a random UUID drawn from the env's source.
func (e *Env) ID(prefix string, hexLen int) string {
	return NewID(e.Rand, prefix, hexLen)
}

func NewID(r io.Reader, prefix string, hexLen int) string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		id = uuid.New()
	}
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	if hexLen > len(hex) {
		hexLen = len(hex)
	}
	return prefix + "-" + hex[:hexLen]
}

// Phone returns a number in the NXX-NXX-XXXX format.
func (e *Env) Phone() string {
	return fmt.Sprintf("%d-%d-%d", IntBetween(e.Rand, 200, 999), IntBetween(e.Rand, 100, 999), IntBetween(e.Rand, 1000, 9999))
}

// Digits returns a number of exactly n decimal digits with no leading zero.
func (e *Env) Digits(n int) string {
	var b strings.Builder
	b.WriteByte(byte('1' + e.Rand.Intn(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + e.Rand.Intn(10)))
	}
	return b.String()
}
