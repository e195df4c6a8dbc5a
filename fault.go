package memfile

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// An Op names a state transition that a FaultPolicy may fail.
type Op string

const (
	OpOpen  Op = "open"
	OpClose Op = "close"
)

// A FaultPolicy decides whether a transition fails. Fail is consulted once
// per Open or Close call.
type FaultPolicy interface {
	Fail(op Op) bool
}

// Rates is a FaultPolicy failing each transition with a fixed probability.
type Rates struct {
	Open  float64 `json:"openFailureRate"`
	Close float64 `json:"closeFailureRate"`
}

// DefaultRates fails one open in ten thousand and one close in a hundred
// thousand.
var DefaultRates = Rates{
	Open:  OneIn(10_000),
	Close: OneIn(100_000),
}

// OneIn converts a "1 in n" chance to a probability. n <= 0 yields 0.
func OneIn(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 / float64(n)
}

// Validate reports an error if either rate is not a probability.
func (r Rates) Validate() error {
	if err := validRate(r.Open); err != nil {
		return fmt.Errorf("invalid open failure rate: %w", err)
	}
	if err := validRate(r.Close); err != nil {
		return fmt.Errorf("invalid close failure rate: %w", err)
	}
	return nil
}

func validRate(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%v is outside [0, 1]", p)
	}
	return nil
}

func (r Rates) rate(op Op) float64 {
	switch op {
	case OpOpen:
		return r.Open
	case OpClose:
		return r.Close
	}
	return 0
}

// Fail implements [FaultPolicy] using the process-wide random source.
func (r Rates) Fail(op Op) bool {
	return roll(rand.Float64, r.rate(op))
}

// Seeded returns a policy with the same rates drawing from a private PCG
// source, so a run can be reproduced. The result is not safe for concurrent
// use.
func (r Rates) Seeded(seed uint64) FaultPolicy {
	return &seeded{Rates: r, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type seeded struct {
	Rates
	rng *rand.Rand
}

func (s *seeded) Fail(op Op) bool {
	return roll(s.rng.Float64, s.rate(op))
}

func roll(next func() float64, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return next() < p
}

// Never is a FaultPolicy that never fails.
var Never FaultPolicy = Rates{}

// Always returns a FaultPolicy that fails every listed op and no other.
func Always(ops ...Op) FaultPolicy {
	a := make(always, len(ops))
	for _, op := range ops {
		a[op] = struct{}{}
	}
	return a
}

type always map[Op]struct{}

func (a always) Fail(op Op) bool {
	_, ok := a[op]
	return ok
}
