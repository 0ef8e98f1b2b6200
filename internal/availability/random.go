package availability

import "math/rand"

// Random returns a mask where each slot is free with probability fill.
// Used to generate demo profiles.
func Random(r *rand.Rand, fill float64) Mask {
	var m Mask
	for i := range m {
		m[i] = r.Float64() < fill
	}
	return m
}
