package sim

import (
	"github.com/sirupsen/logrus"
)

// Simulator resolves games, regions and the final stage against a single
// random stream. It is not safe for concurrent use; build one per run.
type Simulator struct {
	model  *UpsetModel
	rng    RandomSource
	logger *logrus.Logger
}

// NewSimulator creates a simulator drawing from rng
func NewSimulator(config UpsetConfig, rng RandomSource, logger *logrus.Logger) *Simulator {
	return &Simulator{
		model:  NewUpsetModel(config),
		rng:    rng,
		logger: logger,
	}
}

// Model exposes the upset model the simulator uses
func (s *Simulator) Model() *UpsetModel {
	return s.model
}

// SimulateGame returns the winner of a game between a and b. It consumes
// exactly one draw from the random stream.
func (s *Simulator) SimulateGame(a, b Entrant) Entrant {
	// equal seeds resolve with b as the favorite
	stronger, weaker := b, a
	if a.Seed < b.Seed {
		stronger, weaker = a, b
	}

	p := s.model.Probability(stronger.Seed, weaker.Seed)
	draw := s.rng.Float64() * amplification(a.Seed, b.Seed)

	if draw < p {
		return weaker
	}
	return stronger
}

// Play resolves a matchup into a result tagged with the matchup's round
func (s *Simulator) Play(m Matchup) GameResult {
	winner := s.SimulateGame(m.A, m.B)
	loser := m.B
	if winner == m.B {
		loser = m.A
	}

	s.logger.WithFields(logrus.Fields{
		"round":  m.Round,
		"winner": winner.Name,
		"loser":  loser.Name,
		"upset":  winner.Seed > loser.Seed,
	}).Debug("Game decided")

	return GameResult{
		Winner: winner,
		Loser:  loser,
		Round:  m.Round,
	}
}
