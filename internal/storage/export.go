package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravlab/internal/sim"
)

type ExportData struct {
	ID          string             `json:"id"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Seed        int64              `json:"seed"`
	G           float64            `json:"gravitational_constant"`
	Collisions  bool               `json:"collisions"`
	Samples     int                `json:"samples"`
	Times       []float64          `json:"times"`
	BodyCounts  []int              `json:"body_counts"`
	Frames      [][]float64        `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

// ExportJSON streams a full run, metadata plus trajectory, as indented
// JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:          meta.ID,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Seed:        meta.Seed,
		G:           meta.G,
		Collisions:  meta.Collisions,
		Samples:     len(result.Times),
		Times:       result.Times,
		BodyCounts:  result.BodyCounts,
		Frames:      result.Frames,
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
