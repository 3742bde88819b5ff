package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/madness-mcp-server/internal/config"
	"github.com/sam-maryland/madness-mcp-server/internal/render"
	"github.com/sam-maryland/madness-mcp-server/internal/roster"
	"github.com/sam-maryland/madness-mcp-server/internal/sim"
	"github.com/sirupsen/logrus"
)

// BracketHandler handles the bracket simulation MCP tools
type BracketHandler struct {
	source   roster.Source
	settings *config.SimulatorConfig
	clock    clockwork.Clock
	logger   *logrus.Logger
}

// NewBracketHandler creates a new bracket handler
func NewBracketHandler(source roster.Source, settings *config.SimulatorConfig, clock clockwork.Clock, logger *logrus.Logger) *BracketHandler {
	return &BracketHandler{
		source:   source,
		settings: settings,
		clock:    clock,
		logger:   logger,
	}
}

var (
	seedProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Random seed for a reproducible run. A seed is chosen and reported when omitted",
	}
	profileProperty = map[string]interface{}{
		"type":        "string",
		"description": "Upset profile from the simulator settings (default, chalk, chaos, ...)",
	}
)

// ListEntrantsTool returns the list_entrants MCP tool definition
func (h *BracketHandler) ListEntrantsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_entrants",
		Description: "List the seeded teams in the bracket, optionally for a single region, and report any roster gaps",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region name: East, West, South or Midwest",
				},
			},
		},
	}
}

// GetUpsetProbabilityTool returns the get_upset_probability MCP tool definition
func (h *BracketHandler) GetUpsetProbabilityTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_upset_probability",
		Description: "Get the nominal and effective probability that the weaker of two seeds wins",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed_a": map[string]interface{}{
					"type":        "integer",
					"description": "First seed (1-16)",
					"required":    true,
				},
				"seed_b": map[string]interface{}{
					"type":        "integer",
					"description": "Second seed (1-16)",
					"required":    true,
				},
				"profile": profileProperty,
			},
		},
	}
}

// SimulateGameTool returns the simulate_game MCP tool definition
func (h *BracketHandler) SimulateGameTool() mcp.Tool {
	return mcp.Tool{
		Name:        "simulate_game",
		Description: "Simulate a single game between two teams in the field",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_a": map[string]interface{}{
					"type":        "string",
					"description": "Name of the first team",
					"required":    true,
				},
				"team_b": map[string]interface{}{
					"type":        "string",
					"description": "Name of the second team",
					"required":    true,
				},
				"seed":    seedProperty,
				"profile": profileProperty,
			},
		},
	}
}

// SimulateRegionTool returns the simulate_region MCP tool definition
func (h *BracketHandler) SimulateRegionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "simulate_region",
		Description: "Simulate one sixteen-team region from the first round to the Elite 8",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region name: East, West, South or Midwest",
					"required":    true,
				},
				"seed":    seedProperty,
				"profile": profileProperty,
			},
		},
	}
}

// SimulateTournamentTool returns the simulate_tournament MCP tool definition
func (h *BracketHandler) SimulateTournamentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "simulate_tournament",
		Description: "Simulate the full 64-team bracket through the Final Four and championship game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed":    seedProperty,
				"profile": profileProperty,
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Response format: json (default) or text",
					"enum":        []string{"json", "text"},
				},
			},
		},
	}
}

// HandleListEntrants handles the list_entrants tool execution
func (h *BracketHandler) HandleListEntrants(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	regionName, ok := stringArg(args, "region")
	if !ok {
		return errorResult("Error: region must be a string"), nil
	}

	entrants, err := h.source.Entrants(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load roster")
		return errorResult("Error loading roster: %v", err), nil
	}

	issues := roster.Validate(entrants)
	summary := fmt.Sprintf("Found %d entrants", len(entrants))

	if strings.TrimSpace(regionName) != "" {
		region, ok := sim.ParseRegion(regionName)
		if !ok {
			return errorResult("Error: unknown region %q", regionName), nil
		}
		entrants = roster.InRegion(entrants, region)
		summary = fmt.Sprintf("Found %d entrants in the %s region", len(entrants), region)

		var regionIssues []roster.RegionIssues
		for _, ri := range issues {
			if ri.Region == region {
				regionIssues = append(regionIssues, ri)
			}
		}
		issues = regionIssues
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     EntrantsData{Entrants: entrants, Issues: issues},
		Summary:  summary,
		Metadata: h.metadata("", nil, ""),
	})
}

// HandleGetUpsetProbability handles the get_upset_probability tool execution
func (h *BracketHandler) HandleGetUpsetProbability(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	seedA, present, err := intArg(args, "seed_a")
	if err != nil || !present {
		return errorResult("Error: seed_a is required and must be an integer"), nil
	}
	seedB, present, err := intArg(args, "seed_b")
	if err != nil || !present {
		return errorResult("Error: seed_b is required and must be an integer"), nil
	}
	if seedA < 1 || seedA > sim.RegionSize || seedB < 1 || seedB > sim.RegionSize {
		return errorResult("Error: seeds must be between 1 and %d", sim.RegionSize), nil
	}

	profile, upsetConfig, errResult := h.upsetConfig(args)
	if errResult != nil {
		return errResult, nil
	}

	model := sim.NewUpsetModel(upsetConfig)
	a, b := int(seedA), int(seedB)
	pair := sim.NewSeedPair(a, b)
	_, inTable := upsetConfig.Table[pair]
	nominal := model.Probability(a, b)
	effective := model.EffectiveProbability(a, b)

	data := UpsetProbabilityData{
		Pairing:              pair.String(),
		InTable:              inTable,
		NominalProbability:   nominal,
		EffectiveProbability: effective,
		Amplification:        1 + float64(pair.Weaker-pair.Stronger)/32,
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     data,
		Summary:  fmt.Sprintf("The %d seed beats the %d seed %.1f%% of the time", pair.Weaker, pair.Stronger, effective*100),
		Metadata: h.metadata("", nil, profile),
	})
}

// HandleSimulateGame handles the simulate_game tool execution
func (h *BracketHandler) HandleSimulateGame(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	nameA, ok := stringArg(args, "team_a")
	if !ok || strings.TrimSpace(nameA) == "" {
		return errorResult("Error: team_a is required and must be a string"), nil
	}
	nameB, ok := stringArg(args, "team_b")
	if !ok || strings.TrimSpace(nameB) == "" {
		return errorResult("Error: team_b is required and must be a string"), nil
	}

	seed, errResult := h.seed(args)
	if errResult != nil {
		return errResult, nil
	}
	profile, upsetConfig, errResult := h.upsetConfig(args)
	if errResult != nil {
		return errResult, nil
	}

	entrants, err := h.source.Entrants(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load roster")
		return errorResult("Error loading roster: %v", err), nil
	}

	teamA, found := roster.Lookup(entrants, nameA)
	if !found {
		return errorResult("Error: team %q not found in the field", nameA), nil
	}
	teamB, found := roster.Lookup(entrants, nameB)
	if !found {
		return errorResult("Error: team %q not found in the field", nameB), nil
	}
	if teamA == teamB {
		return errorResult("Error: a team cannot play itself"), nil
	}

	h.logger.WithFields(logrus.Fields{
		"team_a":  teamA.Name,
		"team_b":  teamB.Name,
		"seed":    seed,
		"profile": profile,
	}).Info("Simulating game")

	simulator := sim.NewSimulator(upsetConfig, sim.NewSeededSource(seed), h.logger)
	winner := simulator.SimulateGame(teamA, teamB)
	loser := teamB
	if winner == teamB {
		loser = teamA
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     GameData{Winner: winner, Loser: loser, Upset: winner.Seed > loser.Seed},
		Summary:  render.Game(sim.GameResult{Winner: winner, Loser: loser}),
		Metadata: h.metadata("", &seed, profile),
	})
}

// HandleSimulateRegion handles the simulate_region tool execution
func (h *BracketHandler) HandleSimulateRegion(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	regionName, ok := stringArg(args, "region")
	if !ok || strings.TrimSpace(regionName) == "" {
		return errorResult("Error: region is required and must be a string"), nil
	}
	region, ok := sim.ParseRegion(regionName)
	if !ok {
		return errorResult("Error: unknown region %q (expected East, West, South or Midwest)", regionName), nil
	}

	seed, errResult := h.seed(args)
	if errResult != nil {
		return errResult, nil
	}
	profile, upsetConfig, errResult := h.upsetConfig(args)
	if errResult != nil {
		return errResult, nil
	}

	entrants, err := h.source.Entrants(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load roster")
		return errorResult("Error loading roster: %v", err), nil
	}

	h.logger.WithFields(logrus.Fields{
		"region":  region,
		"seed":    seed,
		"profile": profile,
	}).Info("Simulating region")

	simulator := sim.NewSimulator(upsetConfig, sim.NewSeededSource(seed), h.logger)
	result := simulator.SimulateRegion(entrants, region)
	data := newRegionData(result)

	summary := fmt.Sprintf("No games played in the %s region", region)
	if data.Champion != nil {
		summary = fmt.Sprintf("%s wins the %s region (%d games, %d upsets)", data.Champion, region, len(data.Games), data.Upsets)
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     data,
		Summary:  summary,
		Metadata: h.metadata("", &seed, profile),
	})
}

// HandleSimulateTournament handles the simulate_tournament tool execution
func (h *BracketHandler) HandleSimulateTournament(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	format, ok := stringArg(args, "format")
	if !ok {
		return errorResult("Error: format must be a string"), nil
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "json" && format != "text" {
		return errorResult("Error: format must be json or text"), nil
	}

	seed, errResult := h.seed(args)
	if errResult != nil {
		return errResult, nil
	}
	profile, upsetConfig, errResult := h.upsetConfig(args)
	if errResult != nil {
		return errResult, nil
	}

	entrants, err := h.source.Entrants(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load roster")
		return errorResult("Error loading roster: %v", err), nil
	}

	runID := uuid.New().String()
	h.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"seed":    seed,
		"profile": profile,
	}).Info("Simulating tournament")

	simulator := sim.NewSimulator(upsetConfig, sim.NewSeededSource(seed), h.logger)
	run, err := simulator.SimulateTournament(entrants)
	if err != nil {
		h.logger.WithError(err).Error("Tournament simulation failed")
		return errorResult("Error simulating tournament: %v", err), nil
	}

	if format == "text" {
		header := fmt.Sprintf("Run %s (seed %d, profile %s)\n\n", runID, seed, profile)
		return textResult(header + render.Bracket(run)), nil
	}

	data := TournamentData{
		Regions:    make([]RegionData, 0, len(run.Regions)),
		FinalFour:  run.FinalFour,
		FinalStage: run.FinalStage,
		Champion:   run.Champion(),
		Upsets:     countUpsets(run.Games()),
	}
	for _, r := range run.Regions {
		data.Regions = append(data.Regions, newRegionData(r))
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     data,
		Summary:  fmt.Sprintf("%s wins the championship over %s", run.Champion(), run.FinalStage.Championship.Loser),
		Metadata: h.metadata(runID, &seed, profile),
	})
}

// seed reads the optional seed argument, deriving one from the clock when
// it is absent so the run can still be replayed.
func (h *BracketHandler) seed(args map[string]interface{}) (int64, *mcp.CallToolResult) {
	seed, present, err := intArg(args, "seed")
	if err != nil {
		return 0, errorResult("Error: %v", err)
	}
	if !present {
		seed = h.clock.Now().UnixNano()
	}
	return seed, nil
}

func (h *BracketHandler) upsetConfig(args map[string]interface{}) (string, sim.UpsetConfig, *mcp.CallToolResult) {
	profile, ok := stringArg(args, "profile")
	if !ok {
		return "", sim.UpsetConfig{}, errorResult("Error: profile must be a string")
	}
	profile = strings.ToLower(strings.TrimSpace(profile))
	if profile == "" {
		profile = config.DefaultProfile
	}

	upsetConfig, err := h.settings.UpsetConfig(profile)
	if err != nil {
		return "", sim.UpsetConfig{}, errorResult("Error: %v", err)
	}
	return profile, upsetConfig, nil
}

func (h *BracketHandler) metadata(runID string, seed *int64, profile string) Metadata {
	return Metadata{
		RunID:     runID,
		Timestamp: h.clock.Now(),
		Source:    h.source.Name(),
		Seed:      seed,
		Profile:   profile,
	}
}

func (h *BracketHandler) respond(response APIResponse) (*mcp.CallToolResult, error) {
	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		h.logger.WithError(err).Error("Failed to format response")
		return errorResult("Error formatting response: %s", err.Error()), nil
	}
	return textResult(jsonResponse), nil
}
