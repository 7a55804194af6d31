package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"commentwatch/internal/config"
	"commentwatch/internal/logging"
	"commentwatch/internal/session"
	"commentwatch/internal/worker"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	storeOnce sync.Once
	store     *session.Store
	storeErr  error
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
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:    cfg.Logging.Level,
			Format:   cfg.Logging.Format,
			FilePath: cfg.LogFile(),
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("configure logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureStore() (*session.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.storeErr = err
			return
		}
		c.store = session.Open(cfg.SessionsFile(), logger)
	})
	return c.store, c.storeErr
}

// startBridge launches the scoring worker for the duration of one command.
// Callers own the returned bridge and must Stop it.
func (c *commandContext) startBridge(ctx context.Context) (*worker.Bridge, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	bridge, err := worker.Start(ctx, worker.Options{
		Command:         cfg.Worker.Command,
		Args:            cfg.Worker.Args,
		Dir:             cfg.Worker.Dir,
		StartupTimeout:  time.Duration(cfg.Worker.StartupTimeout) * time.Second,
		ResponseTimeout: time.Duration(cfg.Worker.ResponseTimeout) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("start worker: %w (check worker.command in the config; create one with `commentwatch config init`)", err)
	}
	return bridge, nil
}
