package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/sam-maryland/madness-mcp-server/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{})

	config.Init(logger)

	rootCmd := newRootCmd(logger, clockwork.NewRealClock())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
