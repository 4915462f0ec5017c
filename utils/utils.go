package utils

import (
	"math"
	"math/rand"
)

func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits value to the closed interval [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Lerp interpolates between a and b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Ease moves current toward target by factor per call. A factor of 1 jumps
// straight to the target, smaller factors converge exponentially.
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// RandBetween returns a uniform random value in [min, max).
func RandBetween(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// RandSign returns -1 or 1 with equal probability.
func RandSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CopySign returns a value with the magnitude of mag and the sign of sign.
// A sign of exactly zero keeps the magnitude positive.
func CopySign(mag, sign float64) float64 {
	if sign < 0 {
		return -Abs(mag)
	}
	return Abs(mag)
}
