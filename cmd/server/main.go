package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/madness-mcp-server/internal/config"
	"github.com/sam-maryland/madness-mcp-server/internal/mcp"
	"github.com/sam-maryland/madness-mcp-server/internal/roster"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serve(logger *logrus.Logger) error {
	logger.SetLevel(config.LogLevel())

	settings, err := config.LoadSimulatorSettings(config.SettingsPath())
	if err != nil {
		return fmt.Errorf("failed to load simulator settings: %w", err)
	}
	logger.WithField("profiles", settings.ProfileNames()).Info("Simulator settings loaded")

	source, err := roster.Open(config.RosterPath(), config.RosterURL(), logger)
	if err != nil {
		return fmt.Errorf("failed to open roster: %w", err)
	}

	mcpServer := mcp.NewBracketMCPServer(source, settings, clockwork.NewRealClock(), logger)
	if mcpServer == nil {
		return fmt.Errorf("failed to create MCP server")
	}

	logger.Info("Starting Bracket MCP Server...")

	return server.ServeStdio(mcpServer)
}

func main() {
	// stdout carries the MCP protocol, so logs go to stderr
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	rootCmd := &cobra.Command{
		Use:   "madness-mcp-server",
		Short: "MCP server that simulates a 64-team tournament bracket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(logger)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("roster", "", "Path to a JSON roster file")
	rootCmd.Flags().String("roster-url", "", "URL of a JSON roster")
	rootCmd.Flags().String("settings", "", "Path to the simulator settings file")

	config.Init(logger)
	viper.BindPFlag(config.KeyLogLevel, rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag(config.KeyRosterPath, rootCmd.Flags().Lookup("roster"))
	viper.BindPFlag(config.KeyRosterURL, rootCmd.Flags().Lookup("roster-url"))
	viper.BindPFlag(config.KeySettingsPath, rootCmd.Flags().Lookup("settings"))

	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
