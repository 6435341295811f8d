package metrics

import (
	"math"

	"github.com/san-kum/gravlab/internal/universe"
)

// Metric accumulates an observation over a run. Observe is called once
// per simulation step, before the step is applied.
type Metric interface {
	Name() string
	Observe(u *universe.Universe, t float64)
	Value() float64
	Reset()
}

// BodyCount reports the final population size, which shrinks as merges
// happen.
type BodyCount struct {
	count int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (m *BodyCount) Name() string { return "bodies" }

func (m *BodyCount) Observe(u *universe.Universe, t float64) {
	m.count = u.Len()
}

func (m *BodyCount) Value() float64 { return float64(m.count) }
func (m *BodyCount) Reset()         { m.count = 0 }

// MassDrift tracks the maximum relative deviation of total mass from its
// initial value. Merging is mass-conserving, so any drift is a bug.
type MassDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift { return &MassDrift{} }

func (m *MassDrift) Name() string { return "mass_drift" }

func (m *MassDrift) Observe(u *universe.Universe, t float64) {
	mass := u.TotalMass()
	if m.samples == 0 {
		m.initial = mass
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// MeanKineticEnergy averages kinetic energy over the observed steps.
type MeanKineticEnergy struct {
	total   float64
	samples int
}

func NewMeanKineticEnergy() *MeanKineticEnergy { return &MeanKineticEnergy{} }

func (m *MeanKineticEnergy) Name() string { return "mean_kinetic_energy" }

func (m *MeanKineticEnergy) Observe(u *universe.Universe, t float64) {
	m.total += u.KineticEnergy()
	m.samples++
}

func (m *MeanKineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanKineticEnergy) Reset() {
	m.total = 0
	m.samples = 0
}

// MomentumMagnitude reports the latest |p| of the whole population.
// Gravity alone conserves it exactly; merging does not, since merges
// average velocity instead of summing momentum.
type MomentumMagnitude struct {
	value float64
}

func NewMomentumMagnitude() *MomentumMagnitude { return &MomentumMagnitude{} }

func (m *MomentumMagnitude) Name() string { return "momentum" }

func (m *MomentumMagnitude) Observe(u *universe.Universe, t float64) {
	px, py := u.Momentum()
	m.value = math.Hypot(px, py)
}

func (m *MomentumMagnitude) Value() float64 { return m.value }
func (m *MomentumMagnitude) Reset()         { m.value = 0 }

// Defaults is the metric set attached to every recorded run.
func Defaults() []Metric {
	return []Metric{
		NewBodyCount(),
		NewMassDrift(),
		NewMeanKineticEnergy(),
		NewMomentumMagnitude(),
	}
}
