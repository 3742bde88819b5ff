package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultUpsetProbability applies to any pairing missing from the upset table
const DefaultUpsetProbability = 0.30

// SeedPair is a canonical pairing, stronger (lower) seed first
type SeedPair struct {
	Stronger int
	Weaker   int
}

// NewSeedPair orders two seeds into a canonical pair
func NewSeedPair(a, b int) SeedPair {
	if a <= b {
		return SeedPair{Stronger: a, Weaker: b}
	}
	return SeedPair{Stronger: b, Weaker: a}
}

// String renders the pair as "stronger-weaker", the key format used in
// settings files.
func (p SeedPair) String() string {
	return fmt.Sprintf("%d-%d", p.Stronger, p.Weaker)
}

// ParseSeedPair parses a "stronger-weaker" key
func ParseSeedPair(key string) (SeedPair, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 2 {
		return SeedPair{}, fmt.Errorf("invalid seed pair %q: expected format stronger-weaker", key)
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return SeedPair{}, fmt.Errorf("invalid seed pair %q: %w", key, err)
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return SeedPair{}, fmt.Errorf("invalid seed pair %q: %w", key, err)
	}
	if a < 1 || b < 1 {
		return SeedPair{}, fmt.Errorf("invalid seed pair %q: seeds must be positive", key)
	}
	return NewSeedPair(a, b), nil
}

// UpsetConfig is the tunable surface of the upset model
type UpsetConfig struct {
	Table              map[SeedPair]float64
	DefaultProbability float64
}

// DefaultUpsetConfig returns the historical first-round upset rates
func DefaultUpsetConfig() UpsetConfig {
	return UpsetConfig{
		Table: map[SeedPair]float64{
			{1, 16}: 0.01,
			{2, 15}: 0.06,
			{3, 14}: 0.13,
			{4, 13}: 0.21,
			{5, 12}: 0.35,
			{6, 11}: 0.37,
			{7, 10}: 0.40,
			{8, 9}:  0.50,
		},
		DefaultProbability: DefaultUpsetProbability,
	}
}

// Validate checks that every probability lies in [0, 1]
func (c UpsetConfig) Validate() error {
	if c.DefaultProbability < 0 || c.DefaultProbability > 1 {
		return fmt.Errorf("default upset probability %v out of range [0,1]", c.DefaultProbability)
	}
	for pair, p := range c.Table {
		if p < 0 || p > 1 {
			return fmt.Errorf("upset probability for %s is %v, out of range [0,1]", pair, p)
		}
	}
	return nil
}

// UpsetModel maps a seed pairing to the chance the weaker seed wins
type UpsetModel struct {
	config UpsetConfig
}

// NewUpsetModel creates an upset model. The table is copied so later
// changes to the caller's map do not leak in.
func NewUpsetModel(config UpsetConfig) *UpsetModel {
	table := make(map[SeedPair]float64, len(config.Table))
	for k, v := range config.Table {
		table[NewSeedPair(k.Stronger, k.Weaker)] = v
	}
	return &UpsetModel{
		config: UpsetConfig{Table: table, DefaultProbability: config.DefaultProbability},
	}
}

// Probability returns the nominal probability that the weaker of the two
// seeds wins. Argument order does not matter.
func (m *UpsetModel) Probability(seedA, seedB int) float64 {
	if p, ok := m.config.Table[NewSeedPair(seedA, seedB)]; ok {
		return p
	}
	return m.config.DefaultProbability
}

// EffectiveProbability is the actual upset rate once the seed-gap
// amplification of the random draw is applied.
func (m *UpsetModel) EffectiveProbability(seedA, seedB int) float64 {
	p := m.Probability(seedA, seedB)
	amp := amplification(seedA, seedB)
	if p >= amp {
		return 1
	}
	return p / amp
}

// amplification widens the draw range as the seed gap grows, so lopsided
// games favor the stronger seed beyond the table rate.
func amplification(seedA, seedB int) float64 {
	gap := seedA - seedB
	if gap < 0 {
		gap = -gap
	}
	return 1 + float64(gap)/32
}
