// Package config handles process configuration (viper) and the simulator
// settings file. Both binaries call Init before reading any value.
package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	KeyLogLevel     = "log_level"
	KeyRosterPath   = "roster_path"
	KeyRosterURL    = "roster_url"
	KeySettingsPath = "settings_path"
)

// Init wires viper to ~/.madness.yaml and MADNESS_* environment variables
func Init(logger *logrus.Logger) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".madness")
	viper.AddConfigPath(home)
	viper.AutomaticEnv()
	viper.BindEnv(KeyLogLevel, "MADNESS_LOG_LEVEL")
	viper.BindEnv(KeyRosterPath, "MADNESS_ROSTER_PATH")
	viper.BindEnv(KeyRosterURL, "MADNESS_ROSTER_URL")
	viper.BindEnv(KeySettingsPath, "MADNESS_SETTINGS_PATH")
	viper.SetDefault(KeyRosterPath, "")
	viper.SetDefault(KeyRosterURL, "")
	viper.SetDefault(KeySettingsPath, "")

	// a missing config file is fine
	if err := viper.ReadInConfig(); err != nil {
		logger.WithError(err).Debug("No config file loaded")
	} else {
		logger.WithField("file", viper.ConfigFileUsed()).Info("Loaded config file")
	}
}

// LogLevel parses the configured log level, defaulting to info when unset
// or invalid
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(viper.GetString(KeyLogLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func RosterPath() string {
	return viper.GetString(KeyRosterPath)
}

func RosterURL() string {
	return viper.GetString(KeyRosterURL)
}

func SettingsPath() string {
	return viper.GetString(KeySettingsPath)
}
