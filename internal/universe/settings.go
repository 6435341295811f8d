package universe

import "math/rand"

// Range is a half-open interval [Min, Max) to draw from during generation.
type Range struct {
	Min float64
	Max float64
}

func (r Range) IsEmpty() bool { return r.Min >= r.Max }

// Sample draws uniformly from the range. An empty range collapses to Min
// exactly, so fixed-value settings stay bit-reproducible.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.IsEmpty() {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// GenerationSettings control the seeded bulk (re)population of a universe.
// Seed 0 is the non-reproducible sentinel: the generator is seeded from the
// wall clock instead. The mass range lower bound must stay above zero; the
// engine does not defend against a non-positive draw.
type GenerationSettings struct {
	Seed               int64
	Bodies             int
	PositionRange      Range
	VelocityRange      Range
	MassRange          Range
	TangentialVelocity bool
}

// DefaultGenerationSettings returns the stock disc-cloud parameters.
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		Bodies:        2500,
		PositionRange: Range{0.0, 250.0},
		VelocityRange: Range{0.0, 125.0},
		MassRange:     Range{1.0, 10.0},
	}
}

// SimulationSettings control the per-step physics. A negative gravitational
// constant turns attraction into repulsion.
type SimulationSettings struct {
	GravitationalConstant float64
	EnableCollisions      bool
}

func DefaultSimulationSettings() SimulationSettings {
	return SimulationSettings{
		GravitationalConstant: 1.0e2,
		EnableCollisions:      true,
	}
}
