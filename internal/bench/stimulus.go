package bench

import (
	"math/rand/v2"

	"github.com/qntx/fifo"
)

// RandomConfig controls randomized stimulus.
type RandomConfig struct {
	Cycles    int     // Number of inputs to generate
	WriteProb float64 // Probability of a write request per cycle
	ReadProb  float64 // Probability of a read request per cycle
	ResetProb float64 // Probability of a reset per cycle
}

// DefaultRandomConfig returns a balanced mix with occasional resets.
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{
		Cycles:    1000,
		WriteProb: 0.5,
		ReadProb:  0.5,
		ResetProb: 0.01,
	}
}

// Random draws cfg.Cycles inputs from rng. Write data counts up from 1 so
// every accepted value is distinct.
func Random(rng *rand.Rand, cfg RandomConfig) []fifo.Input[int] {
	inputs := make([]fifo.Input[int], cfg.Cycles)
	next := 1
	for i := range inputs {
		in := fifo.Input[int]{
			Reset: rng.Float64() < cfg.ResetProb,
			Write: rng.Float64() < cfg.WriteProb,
			Read:  rng.Float64() < cfg.ReadProb,
		}
		if in.Write {
			in.Data = next
			next++
		}
		inputs[i] = in
	}
	return inputs
}
