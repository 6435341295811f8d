package config

// Presets are named starting universes. Each is a complete config; CLI
// flags still override individual fields.
var Presets = map[string]*Config{
	"cloud": {
		Dt: 0.005, Duration: 10.0, Sample: 10,
		Universe: UniverseConfig{G: 1.0e2, Collisions: true},
		Genesis: GenerationConfig{
			Seed: 1, Bodies: 2500,
			PositionMax: 250.0, VelocityMax: 125.0,
			MassMin: 1.0, MassMax: 10.0,
		},
	},
	"disc": {
		Dt: 0.005, Duration: 20.0, Sample: 10,
		Universe: UniverseConfig{G: 1.0e2, Collisions: true},
		Genesis: GenerationConfig{
			Seed: 1, Bodies: 2000,
			PositionMin: 50.0, PositionMax: 300.0,
			VelocityMin: 40.0, VelocityMax: 80.0,
			MassMin: 1.0, MassMax: 5.0,
			Tangential: true,
		},
	},
	"ring": {
		Dt: 0.002, Duration: 30.0, Sample: 20,
		Universe: UniverseConfig{G: 50.0, Collisions: false},
		Genesis: GenerationConfig{
			Seed: 7, Bodies: 1200,
			PositionMin: 200.0, PositionMax: 200.0,
			VelocityMin: 30.0, VelocityMax: 30.0,
			MassMin: 1.0, MassMax: 2.0,
			Tangential: true,
		},
	},
	"collapse": {
		Dt: 0.002, Duration: 15.0, Sample: 10,
		Universe: UniverseConfig{G: 2.0e2, Collisions: true},
		Genesis: GenerationConfig{
			Seed: 3, Bodies: 1500,
			PositionMax: 150.0,
			MassMin:     2.0, MassMax: 20.0,
		},
	},
	"repulsion": {
		Dt: 0.005, Duration: 10.0, Sample: 10,
		Universe: UniverseConfig{G: -1.0e2, Collisions: false},
		Genesis: GenerationConfig{
			Seed: 5, Bodies: 800,
			PositionMax: 50.0, VelocityMax: 10.0,
			MassMin: 1.0, MassMax: 4.0,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the preset names in map order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
