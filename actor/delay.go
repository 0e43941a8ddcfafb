package actor

import (
	"math/rand"
	"time"
)

// normalJitter draws a zero-mean, normally distributed duration with the
// given standard deviation. The sample is the sum of 12 independent uniform
// samples on [0,1) minus 6, which approximates a standard normal, scaled by
// stddev.
func normalJitter(rnd *rand.Rand, stddev time.Duration) time.Duration {
	r := 0.0
	for i := 0; i < 12; i++ {
		r += rnd.Float64()
	}
	r -= 6.0
	return time.Duration(r * float64(stddev))
}

// sleepJitter sleeps for base plus normal jitter. Negative totals are
// clamped to a no-op.
func sleepJitter(rnd *rand.Rand, base, stddev time.Duration) {
	d := base + normalJitter(rnd, stddev)
	if d > 0 {
		time.Sleep(d)
	}
}
