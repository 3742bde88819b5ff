package sim

import (
	"github.com/sirupsen/logrus"
)

// SimulateFinalStage plays the semifinals (East v Midwest, then South v West)
// and the championship between their winners.
func (s *Simulator) SimulateFinalStage(ff FinalFour) FinalStageResult {
	semi1 := s.Play(Matchup{A: ff.East, B: ff.Midwest, Round: RoundFinalFour})
	semi2 := s.Play(Matchup{A: ff.South, B: ff.West, Round: RoundFinalFour})
	final := s.Play(Matchup{A: semi1.Winner, B: semi2.Winner, Round: RoundChampionship})

	s.logger.WithFields(logrus.Fields{
		"champion":  final.Winner.Name,
		"seed":      final.Winner.Seed,
		"region":    final.Winner.Region,
		"runner_up": final.Loser.Name,
	}).Info("Champion crowned")

	return FinalStageResult{
		Semifinals:   [2]GameResult{semi1, semi2},
		Championship: final,
		Champion:     final.Winner,
	}
}

// SimulateTournament runs all four regions in order and then the final
// stage. Every region must produce a champion.
func (s *Simulator) SimulateTournament(roster []Entrant) (BracketRun, error) {
	run := BracketRun{Regions: make([]RegionResult, 0, len(Regions))}
	champions := make(map[Region]Entrant, len(Regions))

	for _, region := range Regions {
		result := s.SimulateRegion(roster, region)
		champ, ok := result.Champion()
		if !ok {
			return BracketRun{}, &RegionIncompleteError{Region: region, Games: len(result.Games)}
		}
		champions[region] = champ
		run.Regions = append(run.Regions, result)
	}

	run.FinalFour = FinalFour{
		East:    champions[East],
		West:    champions[West],
		South:   champions[South],
		Midwest: champions[Midwest],
	}
	run.FinalStage = s.SimulateFinalStage(run.FinalFour)

	return run, nil
}
