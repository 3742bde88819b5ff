package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

// DefaultProfile names the base upset settings
const DefaultProfile = "default"

// UpsetSettings represents one named set of upset model parameters
type UpsetSettings struct {
	Description             string             `json:"description"`
	UpsetTable              map[string]float64 `json:"upset_table"`
	DefaultUpsetProbability *float64           `json:"default_upset_probability,omitempty"`
}

// SimulatorConfig represents the entire simulator settings file
type SimulatorConfig struct {
	Instructions    string                   `json:"_instructions,omitempty"`
	DefaultSettings UpsetSettings            `json:"default_settings"`
	Profiles        map[string]UpsetSettings `json:"profiles"`

	path string
}

// LoadSimulatorSettings loads simulator settings from path. With an empty
// path the usual locations are searched and, when nothing is found, the
// historical defaults are used.
func LoadSimulatorSettings(path string) (*SimulatorConfig, error) {
	configPaths := []string{
		"configs/simulator_settings.json",
		"../configs/simulator_settings.json",
		"../../configs/simulator_settings.json",
	}
	if path != "" {
		configPaths = []string{path}
	}

	var configData []byte
	var foundPath string

	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			var readErr error
			configData, readErr = os.ReadFile(p)
			if readErr == nil {
				foundPath = p
				break
			}
		}
	}

	if foundPath == "" {
		if path != "" {
			return nil, fmt.Errorf("simulator settings file %s not found", path)
		}
		return DefaultSimulatorConfig(), nil
	}

	var config SimulatorConfig
	if err := json.Unmarshal(configData, &config); err != nil {
		return nil, fmt.Errorf("failed to parse simulator settings from %s: %w", foundPath, err)
	}
	config.path = foundPath

	// make sure every profile resolves before anything is simulated
	for _, name := range config.ProfileNames() {
		if _, err := config.UpsetConfig(name); err != nil {
			return nil, fmt.Errorf("invalid simulator settings in %s: %w", foundPath, err)
		}
	}

	return &config, nil
}

// DefaultSimulatorConfig returns settings equivalent to the built-in model
func DefaultSimulatorConfig() *SimulatorConfig {
	defaults := sim.DefaultUpsetConfig()
	table := make(map[string]float64, len(defaults.Table))
	for pair, p := range defaults.Table {
		table[pair.String()] = p
	}
	dp := defaults.DefaultProbability

	return &SimulatorConfig{
		DefaultSettings: UpsetSettings{
			Description:             "Historical first round upset rates",
			UpsetTable:              table,
			DefaultUpsetProbability: &dp,
		},
		Profiles: make(map[string]UpsetSettings),
	}
}

// Path returns the file the settings were loaded from, if any
func (c *SimulatorConfig) Path() string {
	return c.path
}

// ProfileNames returns the default profile followed by the named profiles
// in alphabetical order.
func (c *SimulatorConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles)+1)
	for name := range c.Profiles {
		if name != DefaultProfile {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultProfile}, names...)
}

// UpsetConfig resolves a profile into an upset model configuration. A named
// profile overlays the default settings: its table entries replace matching
// default entries, and a missing default probability is inherited.
func (c *SimulatorConfig) UpsetConfig(profile string) (sim.UpsetConfig, error) {
	base, err := buildUpsetConfig(c.DefaultSettings, sim.DefaultUpsetProbability)
	if err != nil {
		return sim.UpsetConfig{}, fmt.Errorf("profile %s: %w", DefaultProfile, err)
	}

	profile = strings.TrimSpace(strings.ToLower(profile))
	if profile == "" || profile == DefaultProfile {
		return base, nil
	}

	settings, exists := c.Profiles[profile]
	if !exists {
		return sim.UpsetConfig{}, fmt.Errorf("unknown profile %q (available: %s)", profile, strings.Join(c.ProfileNames(), ", "))
	}

	overlay, err := buildUpsetConfig(settings, base.DefaultProbability)
	if err != nil {
		return sim.UpsetConfig{}, fmt.Errorf("profile %s: %w", profile, err)
	}
	for pair, p := range overlay.Table {
		base.Table[pair] = p
	}
	base.DefaultProbability = overlay.DefaultProbability

	return base, nil
}

func buildUpsetConfig(settings UpsetSettings, fallback float64) (sim.UpsetConfig, error) {
	cfg := sim.UpsetConfig{
		Table:              make(map[sim.SeedPair]float64, len(settings.UpsetTable)),
		DefaultProbability: fallback,
	}
	if settings.DefaultUpsetProbability != nil {
		cfg.DefaultProbability = *settings.DefaultUpsetProbability
	}

	for key, p := range settings.UpsetTable {
		pair, err := sim.ParseSeedPair(key)
		if err != nil {
			return sim.UpsetConfig{}, err
		}
		cfg.Table[pair] = p
	}

	if err := cfg.Validate(); err != nil {
		return sim.UpsetConfig{}, err
	}
	return cfg, nil
}
