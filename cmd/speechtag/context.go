package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"speechtag/internal/config"
	"speechtag/internal/logging"
	"speechtag/internal/pipeline"
	"speechtag/internal/queue"
	"speechtag/internal/services/whisper"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var logErr error
	c.loggerOnce.Do(func() {
		c.logger, logErr = logging.NewFromConfig(cfg)
	})
	if logErr != nil {
		return nil, logErr
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c.logger, nil
}

func (c *commandContext) openStore() (*queue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return queue.Open(cfg)
}

// newPipeline wires the transcription service in when it is enabled.
func (c *commandContext) newPipeline(logger *slog.Logger) (*pipeline.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var transcriber pipeline.Transcriber
	if cfg.Transcription.Enabled {
		transcriber = whisper.NewService(whisper.Config{
			Command:       cfg.Transcription.Command,
			Model:         cfg.Transcription.Model,
			Language:      cfg.Transcription.Language,
			MaxConcurrent: cfg.Transcription.MaxConcurrent,
		})
	}
	return pipeline.New(cfg, logger, transcriber), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
