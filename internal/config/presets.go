package config

var Presets = map[string]*Config{
	"coinflip": {
		Goal: 10, Start: 5, WinProb: 0.5, Steps: 100, Chunk: 10,
	},
	"casino": {
		// roughly a single-zero roulette even-money bet
		Goal: 20, Start: 10, WinProb: 0.4865, Steps: 500, Chunk: 25,
	},
	"longshot": {
		Goal: 50, Start: 5, WinProb: 0.5, Steps: 2000, Chunk: 100,
	},
	"favored": {
		Goal: 10, Start: 3, WinProb: 0.55, Steps: 200, Chunk: 10,
	},
	"doomed": {
		Goal: 10, Start: 5, WinProb: 0.3, Steps: 100, Chunk: 5,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
