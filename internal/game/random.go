package game

import (
	"math/rand"
	"time"
)

// Rand is the random source behind every stochastic decision.
// Tests inject a scripted implementation to force outcomes.
type Rand interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// DiceRoller handles dice rolling for the game
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller creates a new dice roller with a time-seeded random number generator
func NewDiceRoller() *DiceRoller {
	return NewSeededDiceRoller(time.Now().UnixNano())
}

// NewSeededDiceRoller creates a dice roller with a fixed seed
func NewSeededDiceRoller(seed int64) *DiceRoller {
	return &DiceRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a value in [0, 1)
func (dr *DiceRoller) Float64() float64 {
	return dr.rng.Float64()
}

// Intn returns a value in [0, n)
func (dr *DiceRoller) Intn(n int) int {
	return dr.rng.Intn(n)
}

// Chance reports whether a roll lands under probability p
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// RangeInt returns a value in [min, max)
func RangeInt(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min)
}

// Pick returns a random element of items, or the zero value when empty
func Pick[T any](r Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Intn(len(items))]
}
