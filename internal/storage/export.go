package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	ID            string      `json:"id"`
	Goal          int         `json:"goal"`
	Start         int         `json:"start"`
	WinProb       float64     `json:"win_prob"`
	Steps         []int       `json:"steps"`
	Distributions [][]float64 `json:"distributions"`
	RuinMass      float64     `json:"ruin_mass"`
	GoalMass      float64     `json:"goal_mass"`
}

func ExportJSONStdout(meta RunMetadata, trace *Trace) error {
	data := ExportData{
		ID:            meta.ID,
		Goal:          meta.Goal,
		Start:         meta.Start,
		WinProb:       meta.WinProb,
		Steps:         trace.Steps,
		Distributions: make([][]float64, len(trace.Dists)),
		RuinMass:      meta.RuinMass,
		GoalMass:      meta.GoalMass,
	}
	for i, d := range trace.Dists {
		data.Distributions[i] = d
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
