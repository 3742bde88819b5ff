package sim

import (
	"fmt"
	"strings"
)

// Region identifies one of the four sixteen-entrant sub-brackets
type Region string

const (
	East    Region = "East"
	West    Region = "West"
	South   Region = "South"
	Midwest Region = "Midwest"
)

// Regions lists the regions in the order a tournament simulates them
var Regions = []Region{East, West, South, Midwest}

// ParseRegion matches a region name case-insensitively
func ParseRegion(name string) (Region, bool) {
	for _, r := range Regions {
		if strings.EqualFold(string(r), strings.TrimSpace(name)) {
			return r, true
		}
	}
	return "", false
}

const (
	RoundFirst        = 1
	RoundSecond       = 2
	RoundSweetSixteen = 3
	RoundEliteEight   = 4
	RoundFinalFour    = 5
	RoundChampionship = 6
)

// RoundName returns the display name of a round number
func RoundName(round int) string {
	switch round {
	case RoundFirst:
		return "First Round"
	case RoundSecond:
		return "Second Round"
	case RoundSweetSixteen:
		return "Sweet 16"
	case RoundEliteEight:
		return "Elite 8"
	case RoundFinalFour:
		return "Final Four"
	case RoundChampionship:
		return "Championship"
	}
	return fmt.Sprintf("Round %d", round)
}

// Entrant represents a seeded team in the bracket
type Entrant struct {
	Name   string `json:"name"`
	Seed   int    `json:"seed"`
	Region Region `json:"region"`
}

func (e Entrant) String() string {
	return fmt.Sprintf("%s (%d)", e.Name, e.Seed)
}

// Matchup is a pairing of two entrants contesting a round
type Matchup struct {
	A     Entrant `json:"team_a"`
	B     Entrant `json:"team_b"`
	Round int     `json:"round"`
}

// GameResult records the outcome of a single game
type GameResult struct {
	Winner Entrant `json:"winner"`
	Loser  Entrant `json:"loser"`
	Round  int     `json:"round"`
}

// RegionResult holds every game of a region in decision order
type RegionResult struct {
	Region Region       `json:"region"`
	Games  []GameResult `json:"games"`
}

// Champion returns the winner of the region's last game. It reports false
// when no game was played.
func (r RegionResult) Champion() (Entrant, bool) {
	if len(r.Games) == 0 {
		return Entrant{}, false
	}
	return r.Games[len(r.Games)-1].Winner, true
}

// Round returns the games played in the given round, in bracket order
func (r RegionResult) Round(round int) []GameResult {
	var games []GameResult
	for _, g := range r.Games {
		if g.Round == round {
			games = append(games, g)
		}
	}
	return games
}

// FinalFour holds the four region champions
type FinalFour struct {
	East    Entrant `json:"east"`
	West    Entrant `json:"west"`
	South   Entrant `json:"south"`
	Midwest Entrant `json:"midwest"`
}

// FinalStageResult holds the semifinals and the championship game
type FinalStageResult struct {
	Semifinals   [2]GameResult `json:"semifinals"`
	Championship GameResult    `json:"championship"`
	Champion     Entrant       `json:"champion"`
}

// BracketRun is the complete output of one tournament simulation
type BracketRun struct {
	Regions    []RegionResult   `json:"regions"`
	FinalFour  FinalFour        `json:"final_four"`
	FinalStage FinalStageResult `json:"final_stage"`
}

// Champion returns the tournament champion
func (b BracketRun) Champion() Entrant {
	return b.FinalStage.Championship.Winner
}

// Region returns the result for a single region
func (b BracketRun) Region(region Region) (RegionResult, bool) {
	for _, r := range b.Regions {
		if r.Region == region {
			return r, true
		}
	}
	return RegionResult{}, false
}

// Games returns all games of the run in the order they were decided
func (b BracketRun) Games() []GameResult {
	var games []GameResult
	for _, r := range b.Regions {
		games = append(games, r.Games...)
	}
	games = append(games, b.FinalStage.Semifinals[0], b.FinalStage.Semifinals[1])
	games = append(games, b.FinalStage.Championship)
	return games
}

// RegionIncompleteError is returned when a region produces no champion
type RegionIncompleteError struct {
	Region Region
	Games  int
}

func (e *RegionIncompleteError) Error() string {
	return fmt.Sprintf("region %s produced no champion (%d games played)", e.Region, e.Games)
}
