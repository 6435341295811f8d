package body

import "math"

// Body is a point mass in the plane. It carries no state beyond its
// fields; all interaction between bodies happens in the universe engine.
type Body struct {
	Position Vec2
	Velocity Vec2
	Mass     float64
}

// Default returns the safe zero-value body: at rest at the origin with
// unit mass. Production bodies come from generation or merging.
func Default() Body {
	return Body{Mass: 1.0}
}

// Integrate advances position by one explicit Euler step. Velocity must
// already include every force contribution for the step.
func (b *Body) Integrate(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// Radius is the contact and display radius, cbrt(mass). It is recomputed
// from the current mass every call because merging changes mass.
func (b *Body) Radius() float64 {
	return math.Cbrt(b.Mass)
}
