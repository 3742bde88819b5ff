package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/sam-maryland/madness-mcp-server/internal/config"
	"github.com/sam-maryland/madness-mcp-server/internal/render"
	"github.com/sam-maryland/madness-mcp-server/internal/roster"
	"github.com/sam-maryland/madness-mcp-server/internal/sim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the state shared by every subcommand
type cli struct {
	logger *logrus.Logger
	clock  clockwork.Clock

	seed    int64
	profile string
	asJSON  bool

	settings *config.SimulatorConfig
	source   roster.Source
}

func newRootCmd(logger *logrus.Logger, clock clockwork.Clock) *cobra.Command {
	c := &cli{logger: logger, clock: clock}

	rootCmd := &cobra.Command{
		Use:               "bracketsim",
		Short:             "Simulate a 64-team single elimination bracket",
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
	}
	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&c.seed, "seed", 0, "Random seed (chosen from the clock when not set)")
	flags.StringVar(&c.profile, "profile", config.DefaultProfile, "Upset profile from the simulator settings")
	flags.BoolVar(&c.asJSON, "json", false, "Print JSON instead of text")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("roster", "", "Path to a JSON roster file")
	flags.String("roster-url", "", "URL of a JSON roster")
	flags.String("settings", "", "Path to the simulator settings file")

	viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	viper.BindPFlag(config.KeyRosterPath, flags.Lookup("roster"))
	viper.BindPFlag(config.KeyRosterURL, flags.Lookup("roster-url"))
	viper.BindPFlag(config.KeySettingsPath, flags.Lookup("settings"))

	tournamentCmd := &cobra.Command{
		Use:   "tournament",
		Short: "Simulate the whole bracket",
		Args:  cobra.NoArgs,
		RunE:  c.runTournament,
	}

	regionCmd := &cobra.Command{
		Use:   "region <name>",
		Short: "Simulate a single region (East, West, South or Midwest)",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runRegion,
	}

	gameCmd := &cobra.Command{
		Use:   "game <team> <team>",
		Short: "Simulate one game between two teams in the field",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runGame,
	}

	oddsCmd := &cobra.Command{
		Use:   "odds <seed> <seed>",
		Short: "Show the upset probability for a seed pairing",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runOdds,
	}

	rootCmd.AddCommand(tournamentCmd, regionCmd, gameCmd, oddsCmd)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	c.logger.SetLevel(config.LogLevel())

	if !cmd.Flags().Changed("seed") {
		c.seed = c.clock.Now().UnixNano()
	}

	settings, err := config.LoadSimulatorSettings(config.SettingsPath())
	if err != nil {
		return fmt.Errorf("loading simulator settings: %w", err)
	}
	c.settings = settings

	source, err := roster.Open(config.RosterPath(), config.RosterURL(), c.logger)
	if err != nil {
		return fmt.Errorf("opening roster: %w", err)
	}
	c.source = source
	return nil
}

func (c *cli) simulator() (*sim.Simulator, error) {
	upsetConfig, err := c.settings.UpsetConfig(c.profile)
	if err != nil {
		return nil, err
	}
	return sim.NewSimulator(upsetConfig, sim.NewSeededSource(c.seed), c.logger), nil
}

func (c *cli) entrants(ctx context.Context) ([]sim.Entrant, error) {
	entrants, err := c.source.Entrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	for _, issue := range roster.Validate(entrants) {
		c.logger.WithFields(logrus.Fields{
			"region":          issue.Region,
			"missing_seeds":   issue.MissingSeeds,
			"duplicate_seeds": issue.DuplicateSeeds,
		}).Warn("Incomplete region in roster")
	}
	return entrants, nil
}

func (c *cli) header(w io.Writer) {
	fmt.Fprintf(w, "Seed %d, profile %s, roster %s\n\n", c.seed, c.profile, c.source.Name())
}

func (c *cli) runTournament(cmd *cobra.Command, args []string) error {
	entrants, err := c.entrants(cmd.Context())
	if err != nil {
		return err
	}
	s, err := c.simulator()
	if err != nil {
		return err
	}

	run, err := s.SimulateTournament(entrants)
	if err != nil {
		return fmt.Errorf("simulating tournament: %w", err)
	}

	out := cmd.OutOrStdout()
	if c.asJSON {
		return writeJSON(out, run)
	}
	c.header(out)
	fmt.Fprint(out, render.Bracket(run))
	return nil
}

func (c *cli) runRegion(cmd *cobra.Command, args []string) error {
	region, ok := sim.ParseRegion(args[0])
	if !ok {
		return fmt.Errorf("unknown region %q", args[0])
	}
	entrants, err := c.entrants(cmd.Context())
	if err != nil {
		return err
	}
	s, err := c.simulator()
	if err != nil {
		return err
	}

	result := s.SimulateRegion(entrants, region)

	out := cmd.OutOrStdout()
	if c.asJSON {
		return writeJSON(out, result)
	}
	c.header(out)
	fmt.Fprint(out, render.Region(result))
	return nil
}

func (c *cli) runGame(cmd *cobra.Command, args []string) error {
	entrants, err := c.entrants(cmd.Context())
	if err != nil {
		return err
	}
	teamA, ok := roster.Lookup(entrants, args[0])
	if !ok {
		return fmt.Errorf("team %q not found in the field", args[0])
	}
	teamB, ok := roster.Lookup(entrants, args[1])
	if !ok {
		return fmt.Errorf("team %q not found in the field", args[1])
	}
	if teamA == teamB {
		return fmt.Errorf("a team cannot play itself")
	}
	s, err := c.simulator()
	if err != nil {
		return err
	}

	result := s.Play(sim.Matchup{A: teamA, B: teamB})

	out := cmd.OutOrStdout()
	if c.asJSON {
		return writeJSON(out, result)
	}
	c.header(out)
	fmt.Fprintln(out, render.Game(result))
	return nil
}

func (c *cli) runOdds(cmd *cobra.Command, args []string) error {
	seeds := make([]int, 2)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > sim.RegionSize {
			return fmt.Errorf("seed %q must be a number from 1 to %d", arg, sim.RegionSize)
		}
		seeds[i] = n
	}
	upsetConfig, err := c.settings.UpsetConfig(c.profile)
	if err != nil {
		return err
	}

	model := sim.NewUpsetModel(upsetConfig)
	pair := sim.NewSeedPair(seeds[0], seeds[1])
	nominal := model.Probability(seeds[0], seeds[1])
	effective := model.EffectiveProbability(seeds[0], seeds[1])

	out := cmd.OutOrStdout()
	if c.asJSON {
		return writeJSON(out, map[string]interface{}{
			"pairing":               pair.String(),
			"nominal_probability":   nominal,
			"effective_probability": effective,
		})
	}
	fmt.Fprintf(out, "%s: nominal upset %.1f%%, effective %.1f%% (profile %s)\n", pair, nominal*100, effective*100, c.profile)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	return nil
}
