package mcts

import "time"

// Params tunes one Search call. Zero values fall back to defaults.
type Params struct {
	Simulations int
	MaxTime     time.Duration // 0 means no time cap
	Cpuct       float64       // exploration constant
	Temperature float64       // 0 plays the most visited move
	RootNoise   float64       // Dirichlet mix-in weight at the root, 0 disables
	NoiseAlpha  float64
	Seed        int64 // 0 seeds from the clock
}

func DefaultParams() Params {
	return Params{
		Simulations: 800,
		Cpuct:       1.25,
		NoiseAlpha:  0.3,
	}
}
