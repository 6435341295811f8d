package universe

// Conserved-quantity readouts over the current population. These are
// observation helpers for metrics and the live view; Step never calls them.

func (u *Universe) TotalMass() float64 {
	total := 0.0
	for i := range u.bodies {
		total += u.bodies[i].Mass
	}
	return total
}

func (u *Universe) KineticEnergy() float64 {
	ke := 0.0
	for i := range u.bodies {
		ke += 0.5 * u.bodies[i].Mass * u.bodies[i].Velocity.LengthSquared()
	}
	return ke
}

// PotentialEnergy sums -G*mi*mj/r over unordered pairs, skipping
// coincident pairs the same way the force phase does.
func (u *Universe) PotentialEnergy() float64 {
	pe := 0.0
	g := u.Settings.GravitationalConstant

	for i := 0; i < len(u.bodies); i++ {
		for j := i + 1; j < len(u.bodies); j++ {
			r := u.bodies[i].Position.Distance(u.bodies[j].Position)
			if r == 0 {
				continue
			}
			pe -= g * u.bodies[i].Mass * u.bodies[j].Mass / r
		}
	}
	return pe
}

func (u *Universe) Energy() float64 {
	return u.KineticEnergy() + u.PotentialEnergy()
}

func (u *Universe) Momentum() (px, py float64) {
	for i := range u.bodies {
		px += u.bodies[i].Mass * u.bodies[i].Velocity.X
		py += u.bodies[i].Mass * u.bodies[i].Velocity.Y
	}
	return
}

func (u *Universe) AngularMomentum() float64 {
	l := 0.0
	for i := range u.bodies {
		b := &u.bodies[i]
		l += b.Mass * (b.Position.X*b.Velocity.Y - b.Position.Y*b.Velocity.X)
	}
	return l
}
