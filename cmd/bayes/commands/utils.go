/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Bayes commands. Provides common
configuration loading, logging setup, and declaration parsing used across all
command implementations.
*/

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-bayes/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("BAYES")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system and returns the engine logger.
// The caller owns the logger and must Close it.
func SetupLogging() (*logging.Logger, error) {
	logLevel := viper.GetString("log_level")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	format := logging.LogFormat(viper.GetString("log_format"))
	if viper.GetBool("json_logs") {
		format = logging.LogFormatJSON
	}

	// rotate and prune logs left over from earlier runs before opening a new one
	manager := logging.NewLogManager(
		viper.GetString("log_dir"),
		viper.GetInt("log_max_files"),
		viper.GetInt64("log_max_size"),
		viper.GetBool("log_compress"),
	)
	if err := manager.RotateLogs(); err != nil {
		logrus.WithError(err).Warn("log rotation failed")
	}
	if err := manager.CleanupOldLogs(); err != nil {
		logrus.WithError(err).Warn("log cleanup failed")
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(logLevel),
		Format:    format,
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    true,
		Compress:  viper.GetBool("log_compress"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine logger: %w", err)
	}
	return logger, nil
}

// parseNameValue splits a "Name=value" declaration
func parseNameValue(decl string) (string, string, error) {
	idx := strings.Index(decl, "=")
	if idx <= 0 {
		return "", "", fmt.Errorf("invalid declaration %q, expected Name=value", decl)
	}
	return strings.TrimSpace(decl[:idx]), strings.TrimSpace(decl[idx+1:]), nil
}

// parseNameCount splits a "Name" or "Name:count" declaration, returning zero
// when no count is given so the caller's default applies
func parseNameCount(decl string) (string, int, error) {
	idx := strings.Index(decl, ":")
	if idx < 0 {
		return strings.TrimSpace(decl), 0, nil
	}
	name := strings.TrimSpace(decl[:idx])
	count, err := strconv.Atoi(strings.TrimSpace(decl[idx+1:]))
	if err != nil || name == "" {
		return "", 0, fmt.Errorf("invalid declaration %q, expected Name or Name:count", decl)
	}
	return name, count, nil
}
