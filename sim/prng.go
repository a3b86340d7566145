package sim

import "math/rand"

// RandPRNG is the default core.PRNG implementation, backed by
// math/rand. A simulation run seeds one of these from Config.Seed for
// reproducibility.
type RandPRNG struct {
	r *rand.Rand
}

// NewRandPRNG returns a PRNG seeded deterministically from seed.
func NewRandPRNG(seed int64) *RandPRNG {
	return &RandPRNG{r: rand.New(rand.NewSource(seed))}
}

func (p *RandPRNG) Uniform() float64 {
	return p.r.Float64()
}

func (p *RandPRNG) RandBelow(n int) int {
	if n <= 0 {
		panic("RandBelow requires n > 0")
	}
	return p.r.Intn(n)
}
