package export

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// FrameSVG renders flattened body frames (x, y, vx, vy, mass per body)
// as an SVG scene: every body in the last frame as a filled circle with
// its cbrt(mass) radius, earlier frames as faint position trails. The
// viewBox is fitted to the final frame with a margin.
func FrameSVG(w io.Writer, frames [][]float64, size int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to render")
	}
	if size <= 0 {
		size = 1000
	}

	last := frames[len(frames)-1]
	minX, minY, maxX, maxY := bounds(last)

	margin := 0.05 * math.Max(maxX-minX, maxY-minY)
	if margin == 0 {
		margin = 1
	}
	minX -= margin
	minY -= margin
	maxX += margin
	maxY += margin

	scale := float64(size) / math.Max(maxX-minX, maxY-minY)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size)

	// World y grows up, SVG y grows down.
	px := func(x float64) float64 { return (x - minX) * scale }
	py := func(y float64) float64 { return float64(size) - (y-minY)*scale }

	sb.WriteString(`<g fill="#335533">` + "\n")
	for _, frame := range frames[:len(frames)-1] {
		for b := 0; b+4 < len(frame); b += 5 {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="0.8"/>`+"\n", px(frame[b]), py(frame[b+1]))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g fill="#00ff88">` + "\n")
	for b := 0; b+4 < len(last); b += 5 {
		r := math.Cbrt(last[b+4]) * scale
		if r < 1 {
			r = 1
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", px(last[b]), py(last[b+1]), r)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func bounds(frame []float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for b := 0; b+4 < len(frame); b += 5 {
		minX = math.Min(minX, frame[b])
		maxX = math.Max(maxX, frame[b])
		minY = math.Min(minY, frame[b+1])
		maxY = math.Max(maxY, frame[b+1])
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 1, 1
	}
	return
}
