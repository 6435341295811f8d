package universe

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/gravlab/internal/body"
)

// GenerateBodies replaces the whole body collection with a freshly drawn
// population. Any nonzero seed reproduces the same collection bit for bit;
// seed 0 seeds from the wall clock and is deliberately non-reproducible.
//
// Each body is placed on a random heading from the origin at a magnitude
// drawn from the position range, with a velocity heading either drawn
// independently or, in tangential mode, perpendicular to the position
// heading so the cloud starts in roughly circular motion.
func (u *Universe) GenerateBodies(settings GenerationSettings) {
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().Unix()
	}
	rng := rand.New(rand.NewSource(seed))

	u.bodies = make([]body.Body, 0, settings.Bodies)

	for n := 0; n < settings.Bodies; n++ {
		positionTheta := rng.Float64() * 2 * math.Pi

		var velocityTheta float64
		if settings.TangentialVelocity {
			velocityTheta = positionTheta - math.Pi/2
		} else {
			velocityTheta = rng.Float64() * 2 * math.Pi
		}

		u.bodies = append(u.bodies, body.Body{
			Position: body.FromAngle(positionTheta).Scale(settings.PositionRange.Sample(rng)),
			Velocity: body.FromAngle(velocityTheta).Scale(settings.VelocityRange.Sample(rng)),
			Mass:     settings.MassRange.Sample(rng),
		})
	}
}
