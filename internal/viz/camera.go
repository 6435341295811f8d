package viz

import "github.com/san-kum/gravlab/internal/body"

// Camera maps world coordinates onto the canvas dot grid. Scale is dots
// per world unit; Center is the world point at the middle of the view.
type Camera struct {
	Center body.Vec2
	Scale  float64
}

func NewCamera() *Camera {
	return &Camera{Scale: 0.15}
}

func (c *Camera) Project(p body.Vec2, dotsW, dotsH int) (int, int) {
	x := (p.X-c.Center.X)*c.Scale + float64(dotsW)/2
	// Screen y grows downward.
	y := float64(dotsH)/2 - (p.Y-c.Center.Y)*c.Scale
	return int(x), int(y)
}

func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Scale
	c.Center.Y += dy / c.Scale
}

func (c *Camera) Zoom(factor float64) {
	c.Scale *= factor
	if c.Scale < 1e-4 {
		c.Scale = 1e-4
	}
	if c.Scale > 1e3 {
		c.Scale = 1e3
	}
}
