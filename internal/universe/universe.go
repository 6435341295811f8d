package universe

import "github.com/san-kum/gravlab/internal/body"

// Universe owns an ordered collection of bodies and the simulation
// settings that govern their interaction. It is the sole owner of its
// bodies; nothing else holds a reference into the slice. All operations
// are synchronous and single-threaded — callers must serialize Step and
// GenerateBodies.
type Universe struct {
	Settings SimulationSettings
	bodies   []body.Body
}

func New() *Universe {
	return &Universe{Settings: DefaultSimulationSettings()}
}

// Len reports the current body count.
func (u *Universe) Len() int { return len(u.bodies) }

// Bodies exposes the collection for read-only iteration by a rendering
// or recording collaborator. The slice must not be mutated or retained
// across a Step or GenerateBodies call.
func (u *Universe) Bodies() []body.Body { return u.bodies }

// At returns a copy of the body at index i.
func (u *Universe) At(i int) body.Body { return u.bodies[i] }

// Step advances the simulation by dt seconds: collision merging when
// enabled, then pairwise gravity, then position integration. It never
// fails; a negative dt is clamped to zero.
func (u *Universe) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}

	if u.Settings.EnableCollisions {
		u.resolveCollisions()
	}
	u.accumulateGravity(dt)

	for i := range u.bodies {
		u.bodies[i].Integrate(dt)
	}
}

// resolveCollisions scans unordered pairs in index order and merges the
// first contact found for each outer index. The merged body is appended
// and the pair removed, then the same outer index is scanned again
// against the shifted collection, so a single pass can cascade merges.
func (u *Universe) resolveCollisions() {
	for i := 0; i < len(u.bodies); i++ {
		for j := i + 1; j < len(u.bodies); j++ {
			distance := u.bodies[i].Position.Distance(u.bodies[j].Position)
			if distance > u.bodies[i].Radius()+u.bodies[j].Radius() {
				continue
			}

			u.bodies = append(u.bodies, merge(u.bodies[i], u.bodies[j]))

			// Remove the higher index first so the lower stays valid.
			u.bodies = append(u.bodies[:j], u.bodies[j+1:]...)
			u.bodies = append(u.bodies[:i], u.bodies[i+1:]...)

			i--
			break
		}
	}
}

// merge combines two colliding bodies into one. Position and velocity are
// mass-weighted averages and mass is the exact sum, so total mass is
// conserved while the merge stays a soft inelastic average rather than a
// vector-sum momentum merge.
func merge(a, b body.Body) body.Body {
	total := a.Mass + b.Mass
	ra := a.Mass / total
	rb := 1.0 - ra

	return body.Body{
		Position: a.Position.Scale(ra).Add(b.Position.Scale(rb)),
		Velocity: a.Velocity.Scale(ra).Add(b.Velocity.Scale(rb)),
		Mass:     total,
	}
}

// accumulateGravity applies the inverse-square attraction of every
// unordered pair to both velocities. Coincident bodies exert no force on
// each other; the squared distance would divide to infinity otherwise.
// Mass never changes in this phase, so the paired updates are order-safe.
func (u *Universe) accumulateGravity(dt float64) {
	g := u.Settings.GravitationalConstant

	for i := 0; i < len(u.bodies); i++ {
		for j := i + 1; j < len(u.bodies); j++ {
			delta := u.bodies[j].Position.Sub(u.bodies[i].Position)
			d2 := delta.LengthSquared()
			if d2 == 0 {
				continue
			}

			force := delta.Normalize().Scale(g / d2)
			mi, mj := u.bodies[i].Mass, u.bodies[j].Mass
			u.bodies[i].Velocity = u.bodies[i].Velocity.Add(force.Scale(mj * dt))
			u.bodies[j].Velocity = u.bodies[j].Velocity.Sub(force.Scale(mi * dt))
		}
	}
}

// Interactions reports the pairwise force evaluations one Step performs
// at the current population, n(n-1) directed pairs.
func (u *Universe) Interactions() int {
	n := len(u.bodies)
	return n*n - n
}
