package roster

import (
	"context"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

// field2024 lists each region's teams in seed order, 1 through 16
var field2024 = map[sim.Region][sim.RegionSize]string{
	sim.East: {
		"UConn", "Iowa State", "Illinois", "Auburn",
		"San Diego State", "BYU", "Washington State", "Florida Atlantic",
		"Northwestern", "Drake", "Duquesne", "UAB",
		"Yale", "Morehead State", "South Dakota State", "Stetson",
	},
	sim.West: {
		"North Carolina", "Arizona", "Baylor", "Alabama",
		"Saint Mary's", "Clemson", "Dayton", "Mississippi State",
		"Michigan State", "Nevada", "New Mexico", "Grand Canyon",
		"Charleston", "Colgate", "Long Beach State", "Wagner",
	},
	sim.South: {
		"Houston", "Marquette", "Kentucky", "Duke",
		"Wisconsin", "Texas Tech", "Florida", "Nebraska",
		"Texas A&M", "Colorado", "NC State", "James Madison",
		"Vermont", "Oakland", "Western Kentucky", "Longwood",
	},
	sim.Midwest: {
		"Purdue", "Tennessee", "Creighton", "Kansas",
		"Gonzaga", "South Carolina", "Texas", "Utah State",
		"TCU", "Colorado State", "Oregon", "McNeese",
		"Samford", "Akron", "Saint Peter's", "Grambling State",
	},
}

// StaticSource serves the built-in 2024 field
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (s *StaticSource) Name() string {
	return "builtin:2024"
}

func (s *StaticSource) Entrants(ctx context.Context) ([]sim.Entrant, error) {
	return Field2024(), nil
}

// Field2024 returns a fresh copy of the 2024 field, region by region
func Field2024() []sim.Entrant {
	entrants := make([]sim.Entrant, 0, len(sim.Regions)*sim.RegionSize)
	for _, region := range sim.Regions {
		for i, name := range field2024[region] {
			entrants = append(entrants, sim.Entrant{
				Name:   name,
				Seed:   i + 1,
				Region: region,
			})
		}
	}
	return entrants
}
