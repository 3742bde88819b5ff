package sim

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTags(games []GameResult) []int {
	tags := make([]int, len(games))
	for i, g := range games {
		tags[i] = g.Round
	}
	return tags
}

func TestSimulateRegion_ChalkEndToEnd(t *testing.T) {
	s := newTestSimulator(FixedSource(1.0))

	result := s.SimulateRegion(regionRoster("Test"), "Test")

	require.Len(t, result.Games, 15)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 4}, roundTags(result.Games))

	champ, ok := result.Champion()
	require.True(t, ok)
	assert.Equal(t, "Seed1", champ.Name)

	for _, g := range result.Games {
		assert.Less(t, g.Winner.Seed, g.Loser.Seed)
	}
}

func TestSimulateRegion_BracketPositionPairing(t *testing.T) {
	s := newTestSimulator(FixedSource(1.0))

	result := s.SimulateRegion(regionRoster(East), East)

	losers := make([]int, len(result.Games))
	for i, g := range result.Games {
		losers[i] = g.Loser.Seed
	}
	// round 1: 1v16 8v9 5v12 4v13 6v11 3v14 7v10 2v15
	// round 2: 1v8 5v4 6v3 7v2, round 3: 1v4 3v2, round 4: 1v2
	assert.Equal(t, []int{16, 9, 12, 13, 11, 14, 10, 15, 8, 5, 6, 7, 4, 3, 2}, losers)
}

func TestSimulateRegion_Completeness(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := newTestSimulator(NewSeededSource(seed))
		result := s.SimulateRegion(fullRoster(), South)

		require.Len(t, result.Games, 15)

		counts := map[int]int{}
		for _, g := range result.Games {
			counts[g.Round]++
			assert.Equal(t, South, g.Winner.Region)
			assert.Equal(t, South, g.Loser.Region)
		}
		assert.Equal(t, map[int]int{1: 8, 2: 4, 3: 2, 4: 1}, counts)

		// rounds never go backwards
		for i := 1; i < len(result.Games); i++ {
			assert.GreaterOrEqual(t, result.Games[i].Round, result.Games[i-1].Round)
		}
	}
}

func TestSimulateRegion_ChampionNeverLoses(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := newTestSimulator(NewSeededSource(seed))
		result := s.SimulateRegion(fullRoster(), West)

		champ, ok := result.Champion()
		require.True(t, ok)
		for _, g := range result.Games {
			assert.NotEqual(t, champ, g.Loser)
		}
	}
}

func TestSimulateRegion_EliminatedEntrantsDoNotReturn(t *testing.T) {
	s := newTestSimulator(NewSeededSource(99))
	result := s.SimulateRegion(fullRoster(), Midwest)

	eliminated := map[string]bool{}
	for _, g := range result.Games {
		assert.False(t, eliminated[g.Winner.Name], "%s won after being eliminated", g.Winner.Name)
		eliminated[g.Loser.Name] = true
	}
	assert.Len(t, eliminated, 15)
}

func TestSimulateRegion_Deterministic(t *testing.T) {
	first := newTestSimulator(NewSeededSource(2024)).SimulateRegion(fullRoster(), East)
	second := newTestSimulator(NewSeededSource(2024)).SimulateRegion(fullRoster(), East)

	assert.Equal(t, first, second)
}

func TestSimulateRegion_UnknownRegionIsEmpty(t *testing.T) {
	src := &SequenceSource{Values: []float64{0.5}}
	s := newTestSimulator(src)

	result := s.SimulateRegion(fullRoster(), "Atlantis")

	assert.Empty(t, result.Games)
	assert.Equal(t, 0, src.Draws())
	_, ok := result.Champion()
	assert.False(t, ok)
}

func TestSimulateRegion_MissingSeedIsSkipped(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewSimulator(DefaultUpsetConfig(), FixedSource(1.0), logger)

	roster := regionRoster(East)
	roster = roster[:len(roster)-1] // drop seed 16

	result := s.SimulateRegion(roster, East)

	// 7 first round games, then 3 + a bye, 2, 1
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 3, 3, 4}, roundTags(result.Games))
	for _, g := range result.Games {
		assert.NotEqual(t, 16, g.Loser.Seed)
	}

	// seed 1 never plays without its opponent, so the 2 seed runs the table
	champ, ok := result.Champion()
	require.True(t, ok)
	assert.Equal(t, 2, champ.Seed)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, 1, e.Data["seed_a"])
			assert.Equal(t, 16, e.Data["seed_b"])
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestSimulateRegion_DuplicateSeedUsesFirst(t *testing.T) {
	s := newTestSimulator(FixedSource(1.0))
	roster := append(regionRoster(East), Entrant{Name: "Impostor", Seed: 1, Region: East})

	result := s.SimulateRegion(roster, East)

	require.Len(t, result.Games, 15)
	champ, _ := result.Champion()
	assert.Equal(t, "Seed1", champ.Name)
}

func TestFirstRound_Pairings(t *testing.T) {
	s := newTestSimulator(FixedSource(1.0))

	matchups := s.FirstRound(regionRoster(West), West)

	require.Len(t, matchups, 8)
	for i, m := range matchups {
		assert.Equal(t, FirstRoundPairs[i][0], m.A.Seed)
		assert.Equal(t, FirstRoundPairs[i][1], m.B.Seed)
		assert.Equal(t, 17, m.A.Seed+m.B.Seed)
		assert.Equal(t, RoundFirst, m.Round)
	}
}

func TestPairWinners(t *testing.T) {
	w := []Entrant{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"}}

	next, byes := pairWinners(w, 3)
	require.Len(t, next, 2)
	assert.Equal(t, Matchup{A: w[0], B: w[1], Round: 3}, next[0])
	assert.Equal(t, Matchup{A: w[2], B: w[3], Round: 3}, next[1])
	assert.Equal(t, []Entrant{w[4]}, byes)

	next, byes = pairWinners(w[:1], 4)
	assert.Empty(t, next)
	assert.Empty(t, byes)
}
