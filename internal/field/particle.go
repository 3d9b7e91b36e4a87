package field

import (
	"math"
	"math/rand"
)

const (
	MinSize  = 0.5
	MaxSize  = 2.0
	MaxSpeed = 0.25

	smallWidth  = 600
	mediumWidth = 1024

	smallCount  = 30
	mediumCount = 60
	largeCount  = 100
)

type Particle struct {
	X, Y           float64
	Size           float64
	SpeedX, SpeedY float64
}

// NewParticle places a particle uniformly inside width × height with a
// size in [MinSize, MaxSize) and each velocity component in
// [-MaxSpeed, MaxSpeed).
func NewParticle(width, height float64, rng *rand.Rand) Particle {
	return Particle{
		X:      rng.Float64() * width,
		Y:      rng.Float64() * height,
		Size:   MinSize + rng.Float64()*(MaxSize-MinSize),
		SpeedX: (rng.Float64()*2 - 1) * MaxSpeed,
		SpeedY: (rng.Float64()*2 - 1) * MaxSpeed,
	}
}

// CountFor returns how many particles a viewport of the given width gets.
func CountFor(width int) int {
	switch {
	case width < smallWidth:
		return smallCount
	case width < mediumWidth:
		return mediumCount
	default:
		return largeCount
	}
}

// Wrap folds v into [0, max). A non-positive max pins v to 0.
func Wrap(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	// -tiny + max rounds to max
	if v >= max {
		v = 0
	}
	return v
}
