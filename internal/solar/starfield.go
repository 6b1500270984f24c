package solar

import "math/rand/v2"

// Starfield scatters count stars around the origin. Each coordinate is
// (u-0.5)*(v*dispersion) for independent uniforms u and v, which crowds stars
// towards the centre and thins them out to ±dispersion/2.
func Starfield(rng *rand.Rand, count int, dispersion float64) [][3]float32 {
	if count <= 0 {
		return nil
	}
	stars := make([][3]float32, count)
	for i := range stars {
		for j := 0; j < 3; j++ {
			stars[i][j] = float32((rng.Float64() - 0.5) * (rng.Float64() * dispersion))
		}
	}
	return stars
}
