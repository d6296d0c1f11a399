package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"memmet/internal/config"
	"memmet/internal/defaults"
	"memmet/internal/logging"
	"memmet/internal/services"
)

type commandContext struct {
	configDirFlag *string
	logLevelFlag  *string
	logFormatFlag *string

	runID string

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error

	storeOnce sync.Once
	store     *defaults.Store
	storeErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configDirFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configDirFlag: configDirFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		runID:         logging.NewRunID(),
	}
}

// configDir resolves --config-dir, then $MEMMET_CONFIG_DIR, then the user
// config directory.
func (c *commandContext) configDir() (string, error) {
	if c.configDirFlag != nil {
		if dir := strings.TrimSpace(*c.configDirFlag); dir != "" {
			return config.ExpandPath(dir)
		}
	}
	return defaults.DefaultDir()
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		dir, err := c.configDir()
		if err != nil {
			c.settingsErr = err
			return
		}
		cfg, _, err := config.Load(config.PathIn(dir))
		if err != nil {
			c.settingsErr = err
			return
		}
		c.settings = cfg
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) ensureStore(cmd *cobra.Command) (*defaults.Store, error) {
	c.storeOnce.Do(func() {
		dir, err := c.configDir()
		if err != nil {
			c.storeErr = err
			return
		}
		logger, err := c.commandLogger(cmd)
		if err != nil {
			c.storeErr = err
			return
		}
		c.store, c.storeErr = defaults.Open(dir, logger)
	})
	return c.store, c.storeErr
}

// ensureLogger builds the process logger on first use. Flags override the
// [logging] settings.
func (c *commandContext) ensureLogger(output io.Writer) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureSettings()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = *c.logLevelFlag
		}
		format := cfg.Logging.Format
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			format = *c.logFormatFlag
		}
		if !logging.ValidFormat(format) {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "cli", "log format",
				"must be console or json, got "+format, nil)
			return
		}
		logger, err := logging.New(logging.Options{Level: level, Format: format, Output: output})
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "cli", "logger", "", err)
			return
		}
		c.logger = logging.WithRunID(logger, c.runID)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) commandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	return c.ensureLogger(cmd.ErrOrStderr())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
