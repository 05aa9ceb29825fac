package render

import (
	"hash/fnv"
	"math"

	"SketchBoard/internal/state"
)

// Magnitude is the jitter amplitude for a sloppiness level.
func Magnitude(level state.Sloppiness) float64 {
	switch level {
	case state.SloppinessModerate:
		return 2
	case state.SloppinessHigh:
		return 4
	}
	return 0
}

// ApplySloppiness offsets v by a deterministic wobble. The same value,
// level and seed always give the same result, so shapes do not shimmer
// between frames.
func ApplySloppiness(v float64, level state.Sloppiness, seed float64) float64 {
	m := Magnitude(level)
	if m == 0 {
		return v
	}
	return v + math.Sin(v*0.1+seed)*m
}

// ElementSeed derives the jitter seed from an element id.
func ElementSeed(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32() % 1000)
}

// jitter binds an element's seed and level; index picks the coordinate.
type jitter struct {
	seed  float64
	level state.Sloppiness
}

func jitterFor(b *state.Base) jitter {
	return jitter{seed: ElementSeed(b.ID), level: b.Sloppiness}
}

func (j jitter) at(v float64, index int) float64 {
	return ApplySloppiness(v, j.level, j.seed+float64(index))
}
