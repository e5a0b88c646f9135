// SPDX-License-Identifier: EPL-2.0

// Package augment draws the playback speed factors used to stretch or shrink
// each chunk's window.
package augment

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// DefaultSteps are the pitch steps the discrete source picks from.
var DefaultSteps = Steps{-4, -3, -2, -1, 0, 1, 2, 3, 4}

// Factor is one draw from a Source. Step is only meaningful when Stepped is
// set.
type Factor struct {
	Speed   float32
	Step    int
	Stepped bool
}

// Source yields speed factors. Implementations are safe for concurrent use.
type Source interface {
	Next() Factor
}

// StepSpeed converts a pitch step to a speed factor, 2^(step/-12).
// Positive steps give factors below 1.
func StepSpeed(step int) float32 {
	return float32(math.Pow(2, float64(step)/-12))
}

// Steps picks uniformly from a set of pitch steps.
type Steps []int

// Choose returns a random step and its speed factor. An empty set always
// yields step 0.
func (s Steps) Choose() (int, float32) {
	if len(s) == 0 {
		return 0, 1
	}
	step := s[rand.IntN(len(s))]
	return step, StepSpeed(step)
}

func (s Steps) Next() Factor {
	step, speed := s.Choose()
	return Factor{Speed: speed, Step: step, Stepped: true}
}

// Uniform draws a speed factor from [Min, Max).
type Uniform struct {
	Min float32
	Max float32
}

func (u Uniform) Next() Factor {
	if u.Max <= u.Min {
		return Factor{Speed: u.Min}
	}
	return Factor{Speed: rand.Float32()*(u.Max-u.Min) + u.Min}
}

// Fixed always returns the same speed. It is mostly useful in tests.
type Fixed float32

func (f Fixed) Next() Factor { return Factor{Speed: float32(f)} }

// Parse builds a Source from its configuration form. mode is "steps" or
// "uniform"; the empty mode means "steps". A nil steps slice takes
// DefaultSteps.
func Parse(mode string, lo, hi float32, steps []int) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "steps", "discrete":
		if steps == nil {
			return DefaultSteps, nil
		}
		if len(steps) == 0 {
			return nil, fmt.Errorf("%w: empty step set", ErrInvalidSpeed)
		}
		return Steps(steps), nil
	case "uniform", "continuous":
		if lo <= 0 || hi < lo {
			return nil, fmt.Errorf("%w: uniform range [%v, %v]", ErrInvalidSpeed, lo, hi)
		}
		return Uniform{Min: lo, Max: hi}, nil
	case "none", "off":
		return Fixed(1), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSpeed, mode)
	}
}
