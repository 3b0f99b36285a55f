package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"log/slog"

	"assetassist/internal/config"
	"assetassist/internal/logging"
)

type commandContext struct {
	configFlag *string
	debugFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, debugFlag: debugFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.debugFlag != nil && *c.debugFlag {
			cfg.Debug = true
			cfg.LogLevel = "debug"
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the run logger, teeing into the configured log directory
// unless the run must not write anywhere.
func newLogger(cfg *config.Config, allowFile bool) (*slog.Logger, func(), error) {
	opts := logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Writers: nil,
	}
	cleanup := func() {}

	if allowFile && cfg.LogDir != "" {
		file, err := logging.OpenLogFile(filepath.Join(cfg.LogDir, "assetassist.log"))
		if err != nil {
			return nil, nil, err
		}
		opts.Writers = append(opts.Writers, os.Stdout, file)
		cleanup = func() { _ = file.Close() }
	}

	logger, err := logging.New(opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return logger, cleanup, nil
}
