package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravlab/internal/metrics"
	"github.com/san-kum/gravlab/internal/universe"
)

// Observer sees the universe once per step, before the step is applied.
type Observer interface {
	OnStep(u *universe.Universe, t float64)
}

// Config controls one recorded run.
type Config struct {
	Dt       float64
	Duration float64
	// Sample records every Nth step into the result. 1 records everything.
	Sample int
}

func DefaultConfig() Config {
	return Config{Dt: 0.01, Duration: 10.0, Sample: 1}
}

// Result holds the sampled trajectory of a run. Frames are flattened body
// states (x, y, vx, vy, mass per body); rows shrink when bodies merge.
type Result struct {
	Frames      [][]float64
	Times       []float64
	BodyCounts  []int
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Runner drives a universe through a fixed-duration run, collecting
// frames, metrics and observers along the way. The universe is stepped
// in place; the caller keeps ownership.
type Runner struct {
	u         *universe.Universe
	metrics   []metrics.Metric
	observers []Observer
}

func New(u *universe.Universe) *Runner {
	return &Runner{u: u}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run advances the universe for cfg.Duration seconds of simulated time.
// It honors context cancellation between steps and returns the frames
// collected so far along with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:     make([][]float64, 0, steps/cfg.Sample+1),
		Times:      make([]float64, 0, steps/cfg.Sample+1),
		BodyCounts: make([]int, 0, steps/cfg.Sample+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	initialEnergy := r.u.Energy()

	r.record(result, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, initialEnergy)
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.u, t)
		}
		for _, o := range r.observers {
			o.OnStep(r.u, t)
		}

		r.u.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if result.StepsTaken%cfg.Sample == 0 {
			r.record(result, t)
		}
	}

	r.finish(result, initialEnergy)
	return result, nil
}

func (r *Runner) record(result *Result, t float64) {
	result.Frames = append(result.Frames, Flatten(r.u))
	result.Times = append(result.Times, t)
	result.BodyCounts = append(result.BodyCounts, r.u.Len())
}

func (r *Runner) finish(result *Result, initialEnergy float64) {
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(r.u.Energy()-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Sample < 1 {
		return fmt.Errorf("sample interval must be at least 1, got %d", cfg.Sample)
	}
	return nil
}

// Flatten copies the population into a flat row of five values per body.
func Flatten(u *universe.Universe) []float64 {
	frame := make([]float64, 0, u.Len()*5)
	for _, b := range u.Bodies() {
		frame = append(frame, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y, b.Mass)
	}
	return frame
}
