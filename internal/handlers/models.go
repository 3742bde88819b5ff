package handlers

import (
	"time"

	"github.com/sam-maryland/madness-mcp-server/internal/roster"
	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

// APIResponse represents the standard response format for our tools
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata
type Metadata struct {
	RunID     string    `json:"run_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Seed      *int64    `json:"seed,omitempty"`
	Profile   string    `json:"profile,omitempty"`
}

// EntrantsData is the payload of list_entrants
type EntrantsData struct {
	Entrants []sim.Entrant        `json:"entrants"`
	Issues   []roster.RegionIssues `json:"issues,omitempty"`
}

// UpsetProbabilityData is the payload of get_upset_probability
type UpsetProbabilityData struct {
	Pairing              string  `json:"pairing"`
	InTable              bool    `json:"in_table"`
	NominalProbability   float64 `json:"nominal_probability"`
	EffectiveProbability float64 `json:"effective_probability"`
	Amplification        float64 `json:"amplification"`
}

// GameData is the payload of simulate_game
type GameData struct {
	Winner sim.Entrant `json:"winner"`
	Loser  sim.Entrant `json:"loser"`
	Upset  bool        `json:"upset"`
}

// RegionData is the payload of simulate_region
type RegionData struct {
	Region   sim.Region       `json:"region"`
	Champion *sim.Entrant     `json:"champion,omitempty"`
	Games    []sim.GameResult `json:"games"`
	Upsets   int              `json:"upsets"`
}

// TournamentData is the payload of simulate_tournament
type TournamentData struct {
	Regions    []RegionData         `json:"regions"`
	FinalFour  sim.FinalFour        `json:"final_four"`
	FinalStage sim.FinalStageResult `json:"final_stage"`
	Champion   sim.Entrant          `json:"champion"`
	Upsets     int                  `json:"upsets"`
}

func newRegionData(r sim.RegionResult) RegionData {
	data := RegionData{
		Region: r.Region,
		Games:  r.Games,
		Upsets: countUpsets(r.Games),
	}
	if champ, ok := r.Champion(); ok {
		data.Champion = &champ
	}
	return data
}

func countUpsets(games []sim.GameResult) int {
	n := 0
	for _, g := range games {
		if g.Winner.Seed > g.Loser.Seed {
			n++
		}
	}
	return n
}
