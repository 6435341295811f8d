package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/gravlab/internal/body"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	out := c.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if strings.TrimSpace(lines[0]) == "" {
		t.Error("expected a lit dot in the first row")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 0)
	c.Set(0, 100)

	for _, r := range c.String() {
		if r != ' ' && r != '\n' {
			t.Errorf("out-of-bounds set lit a dot: %q", r)
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1)
	c.Clear()

	for _, r := range c.String() {
		if r != ' ' && r != '\n' {
			t.Errorf("clear left a lit dot: %q", r)
		}
	}
}

func TestFillCircleMinimumOneDot(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillCircle(4, 8, 0)

	lit := 0
	for _, r := range c.String() {
		if r != ' ' && r != '\n' {
			lit++
		}
	}
	if lit != 1 {
		t.Errorf("zero-radius circle lit %d cells, want 1", lit)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()
	x, y := cam.Project(body.Vec2{}, 160, 96)
	if x != 80 || y != 48 {
		t.Errorf("origin projected to (%d, %d), want (80, 48)", x, y)
	}
}

func TestCameraYAxisFlips(t *testing.T) {
	cam := &Camera{Scale: 1}
	_, yUp := cam.Project(body.Vec2{Y: 10}, 160, 96)
	_, yDown := cam.Project(body.Vec2{Y: -10}, 160, 96)
	if yUp >= yDown {
		t.Errorf("world +y should be screen-up: %d vs %d", yUp, yDown)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.Zoom(0.1)
	}
	if cam.Scale < 1e-4 {
		t.Errorf("scale under-clamped: %g", cam.Scale)
	}
	for i := 0; i < 100; i++ {
		cam.Zoom(10)
	}
	if cam.Scale > 1e3 {
		t.Errorf("scale over-clamped: %g", cam.Scale)
	}
}

func TestCameraPanIsScaleAware(t *testing.T) {
	cam := &Camera{Scale: 2}
	cam.Pan(4, 0)
	if cam.Center.X != 2 {
		t.Errorf("pan moved center to %f, want 2 world units", cam.Center.X)
	}
}
