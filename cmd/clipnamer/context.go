package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/clipnamer/internal/config"
	"github.com/nguyentantai21042004/clipnamer/internal/httpapi"
	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"github.com/nguyentantai21042004/clipnamer/internal/media"
	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
	"github.com/nguyentantai21042004/clipnamer/internal/storage/drive"
	"github.com/nguyentantai21042004/clipnamer/internal/storage/local"
	"github.com/nguyentantai21042004/clipnamer/internal/transcriber"
	"github.com/nguyentantai21042004/clipnamer/pkg/executor"
)

// commandContext lazily builds the collaborators shared by the commands.
type commandContext struct {
	configFlag *string
	tokenFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     logger.Logger
}

func newCommandContext(configFlag, tokenFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		tokenFlag:  tokenFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := os.MkdirAll(cfg.Paths.Temp, 0o755); err != nil {
			c.configErr = fmt.Errorf("create directory %s: %w", cfg.Paths.Temp, err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) log() logger.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logger.New("info")
			return
		}
		c.logger = logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	})
	return c.logger
}

func (c *commandContext) classifier() (*naming.Classifier, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return naming.NewClassifier(cfg.ClassifierRules())
}

func (c *commandContext) processor() (processor.Processor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	classifier, err := c.classifier()
	if err != nil {
		return nil, err
	}

	log := c.log()
	exec := executor.New()

	deps := processor.Deps{
		Classifier:    classifier,
		Format:        cfg.Naming.Format(),
		Media:         media.New(exec, log, cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobeBinary),
		Logger:        log,
		TempDir:       cfg.Paths.Temp,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
	}

	switch cfg.Transcriber.Backend {
	case config.TranscriberGemini:
		g := cfg.Transcriber.Gemini
		deps.Transcriber = transcriber.NewGemini(g.APIKeys, g.Model, g.Prompt, log)
	case config.TranscriberWhisper:
		deps.Transcriber = transcriber.NewWhisper(cfg.Transcriber.Whisper, exec, log)
	}

	return processor.New(deps), nil
}

// token returns the drive token of the CLI session.
func (c *commandContext) token() string {
	if c.tokenFlag != nil {
		if t := strings.TrimSpace(*c.tokenFlag); t != "" {
			return t
		}
	}
	if c.config != nil {
		return c.config.Storage.DriveToken
	}
	return ""
}

// provider opens the configured storage backend with the operator's token.
func (c *commandContext) provider(ctx context.Context) (storage.Provider, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == config.BackendLocal {
		return local.New(cfg.Storage.LocalRoot), nil
	}
	return drive.New(ctx, c.token())
}

// sessionProviders opens storage for HTTP requests. Drive sessions use only
// the request's bearer token, never the configured one.
func sessionProviders(cfg *config.Config) httpapi.ProviderFactory {
	if cfg.Storage.Backend == config.BackendLocal {
		store := local.New(cfg.Storage.LocalRoot)
		return func(context.Context, string) (storage.Provider, error) {
			return store, nil
		}
	}
	return func(ctx context.Context, token string) (storage.Provider, error) {
		if token == "" {
			return nil, storage.ErrUnauthenticated
		}
		return drive.New(ctx, token)
	}
}

// settings returns the configured defaults overlaid with command flags.
func (c *commandContext) settings(f *settingsFlags) (naming.Settings, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return naming.Settings{}, err
	}
	s := cfg.Settings()
	if f == nil {
		return s, cfg.Naming.CheckSettings(s)
	}
	if f.creatorSet {
		s.CreatorCode = f.creator
	}
	if f.startSet {
		if f.start < 1 {
			return s, fmt.Errorf("--start must be at least 1, got %d", f.start)
		}
		s.StartingSequence = f.start
	}
	if f.multiplier != "" {
		m, err := naming.ParseMultiplier(f.multiplier)
		if err != nil {
			return s, err
		}
		s.DefaultMultiplier = m
	}
	return s, cfg.Naming.CheckSettings(s)
}
