package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

// Source provides the flat list of entrants a tournament is simulated from
type Source interface {
	Name() string
	Entrants(ctx context.Context) ([]sim.Entrant, error)
}

// RosterError represents a failure to load a roster
type RosterError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Source     string `json:"source,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *RosterError) Error() string {
	return e.Message
}

// entrantRecord is the on-the-wire roster entry
type entrantRecord struct {
	Name   string `json:"name"`
	Seed   int    `json:"seed"`
	Region string `json:"region"`
}

// decodeEntrants parses a JSON roster, normalizing known region names
func decodeEntrants(data []byte) ([]sim.Entrant, error) {
	var records []entrantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	entrants := make([]sim.Entrant, 0, len(records))
	for i, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("roster entry %d has no name", i)
		}
		if r.Seed < 1 || r.Seed > sim.RegionSize {
			return nil, fmt.Errorf("roster entry %q has seed %d, expected 1-%d", name, r.Seed, sim.RegionSize)
		}
		region := sim.Region(strings.TrimSpace(r.Region))
		if known, ok := sim.ParseRegion(r.Region); ok {
			region = known
		}
		entrants = append(entrants, sim.Entrant{Name: name, Seed: r.Seed, Region: region})
	}

	return entrants, nil
}

// RegionIssues describes the problems found in one region of a roster
type RegionIssues struct {
	Region         sim.Region `json:"region"`
	MissingSeeds   []int      `json:"missing_seeds,omitempty"`
	DuplicateSeeds []int      `json:"duplicate_seeds,omitempty"`
}

// Validate reports regions that do not have exactly one entrant per seed.
// The simulator tolerates gaps, so this is informational.
func Validate(entrants []sim.Entrant) []RegionIssues {
	seen := make(map[sim.Region]map[int]int)
	for _, r := range sim.Regions {
		seen[r] = make(map[int]int)
	}
	for _, e := range entrants {
		if _, ok := seen[e.Region]; !ok {
			seen[e.Region] = make(map[int]int)
		}
		seen[e.Region][e.Seed]++
	}

	regions := make([]sim.Region, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })

	var issues []RegionIssues
	for _, region := range regions {
		counts := seen[region]
		ri := RegionIssues{Region: region}
		for seed := 1; seed <= sim.RegionSize; seed++ {
			switch {
			case counts[seed] == 0:
				ri.MissingSeeds = append(ri.MissingSeeds, seed)
			case counts[seed] > 1:
				ri.DuplicateSeeds = append(ri.DuplicateSeeds, seed)
			}
		}
		if len(ri.MissingSeeds) > 0 || len(ri.DuplicateSeeds) > 0 {
			issues = append(issues, ri)
		}
	}

	return issues
}

// Lookup finds an entrant by name, ignoring case and surrounding space
func Lookup(entrants []sim.Entrant, name string) (sim.Entrant, bool) {
	name = strings.TrimSpace(name)
	for _, e := range entrants {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return sim.Entrant{}, false
}

// InRegion returns the region's entrants ordered by seed
func InRegion(entrants []sim.Entrant, region sim.Region) []sim.Entrant {
	var out []sim.Entrant
	for _, e := range entrants {
		if e.Region == region {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out
}
