// Package render formats simulation results as plain text.
package render

import (
	"fmt"
	"strings"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

// Game renders a single result as "Winner (seed) def. Loser (seed)"
func Game(g sim.GameResult) string {
	return fmt.Sprintf("%s def. %s", g.Winner, g.Loser)
}

// Region renders a region's games grouped by round
func Region(r sim.RegionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Region\n", r.Region)

	if len(r.Games) == 0 {
		b.WriteString("  (no games played)\n")
		return b.String()
	}

	round := 0
	for _, g := range r.Games {
		if g.Round != round {
			round = g.Round
			fmt.Fprintf(&b, "  %s\n", sim.RoundName(round))
		}
		fmt.Fprintf(&b, "    %s\n", Game(g))
	}

	if champ, ok := r.Champion(); ok {
		fmt.Fprintf(&b, "  Region champion: %s\n", champ)
	}
	return b.String()
}

// FinalStage renders the final four field, semifinals and championship
func FinalStage(ff sim.FinalFour, fs sim.FinalStageResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", sim.RoundName(sim.RoundFinalFour))
	for _, e := range []struct {
		region sim.Region
		team   sim.Entrant
	}{
		{sim.East, ff.East},
		{sim.Midwest, ff.Midwest},
		{sim.South, ff.South},
		{sim.West, ff.West},
	} {
		fmt.Fprintf(&b, "  %-8s %s\n", e.region, e.team)
	}
	for _, g := range fs.Semifinals {
		fmt.Fprintf(&b, "    %s\n", Game(g))
	}

	fmt.Fprintf(&b, "%s\n", sim.RoundName(sim.RoundChampionship))
	fmt.Fprintf(&b, "    %s\n", Game(fs.Championship))
	return b.String()
}

// Bracket renders a whole run, ending with the champion banner
func Bracket(run sim.BracketRun) string {
	var b strings.Builder
	for _, r := range run.Regions {
		b.WriteString(Region(r))
		b.WriteString("\n")
	}
	b.WriteString(FinalStage(run.FinalFour, run.FinalStage))
	b.WriteString("\n")

	champ := run.Champion()
	fmt.Fprintf(&b, "Champion: %s, %s Region\n", champ, champ.Region)
	return b.String()
}
