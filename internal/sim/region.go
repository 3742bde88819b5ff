package sim

import (
	"github.com/sirupsen/logrus"
)

// RegionSize is the number of seeds in a complete region
const RegionSize = 16

// FirstRoundPairs lists the opening seed pairings in bracket-position order.
// Adjacent pairs feed the same second-round game.
var FirstRoundPairs = [8][2]int{
	{1, 16}, {8, 9}, {5, 12}, {4, 13}, {6, 11}, {3, 14}, {7, 10}, {2, 15},
}

// FirstRound builds the region's opening matchups from the roster. A pairing
// with a seed missing from the roster is left out.
func (s *Simulator) FirstRound(roster []Entrant, region Region) []Matchup {
	bySeed := make(map[int]Entrant)
	for _, e := range roster {
		if e.Region != region {
			continue
		}
		if _, dup := bySeed[e.Seed]; dup {
			continue
		}
		bySeed[e.Seed] = e
	}

	matchups := make([]Matchup, 0, len(FirstRoundPairs))
	if len(bySeed) == 0 {
		return matchups
	}

	for _, pair := range FirstRoundPairs {
		a, okA := bySeed[pair[0]]
		b, okB := bySeed[pair[1]]
		if !okA || !okB {
			s.logger.WithFields(logrus.Fields{
				"region": region,
				"seed_a": pair[0],
				"seed_b": pair[1],
			}).Warn("Skipping first round matchup with missing entrant")
			continue
		}
		matchups = append(matchups, Matchup{A: a, B: b, Round: RoundFirst})
	}

	return matchups
}

// SimulateRegion plays a region from the first round to its champion.
// Each round is simulated in full, in bracket order, before winners are
// paired for the next one. An unknown region yields an empty result.
func (s *Simulator) SimulateRegion(roster []Entrant, region Region) RegionResult {
	result := RegionResult{Region: region, Games: []GameResult{}}

	matchups := s.FirstRound(roster, region)
	var byes []Entrant

	for round := RoundFirst; len(matchups) > 0; round++ {
		winners := make([]Entrant, 0, len(matchups)+len(byes))
		for _, m := range matchups {
			game := s.Play(m)
			result.Games = append(result.Games, game)
			winners = append(winners, game.Winner)
		}
		winners = append(winners, byes...)

		matchups, byes = pairWinners(winners, round+1)
	}

	if champ, ok := result.Champion(); ok {
		s.logger.WithFields(logrus.Fields{
			"region":   region,
			"champion": champ.Name,
			"seed":     champ.Seed,
			"games":    len(result.Games),
		}).Info("Region decided")
	}

	return result
}

// pairWinners pairs consecutive winners into the next round. An odd entrant
// out advances on a bye.
func pairWinners(winners []Entrant, round int) ([]Matchup, []Entrant) {
	if len(winners) < 2 {
		return nil, nil
	}

	next := make([]Matchup, 0, len(winners)/2)
	for i := 0; i+1 < len(winners); i += 2 {
		next = append(next, Matchup{A: winners[i], B: winners[i+1], Round: round})
	}

	var byes []Entrant
	if len(winners)%2 == 1 {
		byes = []Entrant{winners[len(winners)-1]}
	}
	return next, byes
}
