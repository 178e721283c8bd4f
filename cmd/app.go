package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/ai/gemini"
	"github.com/spigell/skillgap/internal/analyzer"
	"github.com/spigell/skillgap/internal/logger"
	"github.com/spigell/skillgap/internal/secrets"
	"github.com/spigell/skillgap/internal/skills"
)

const geminiKeyEnv = "GEMINI_API_KEY"

// setup builds the logger and config shared by every command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(logger.Options{JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the skillgap", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

// newAnalyzer loads the artifacts and wires the optional advisor. Every failure is fatal.
func newAnalyzer(ctx context.Context, config *Config, logger *zap.Logger) *analyzer.Analyzer {
	catalog, err := skills.Decode(config.Catalog)
	if err != nil {
		logger.Fatal("loading skill catalog", zap.Error(err))
	}

	opts := []analyzer.Option{analyzer.WithPreviewLength(config.PreviewLength)}

	advisor, err := newAdvisor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating an advisor", zap.Error(err),
			zap.String("hint", "set "+geminiKeyEnv+" or ai.gemini.api-key-file, or disable ai.enabled"),
		)
	}
	if advisor != nil {
		opts = append(opts, analyzer.WithAdvisor(advisor))
	}

	if config.Artifacts == nil {
		logger.Fatal("artifacts paths are required")
	}

	a, err := analyzer.Load(config.Artifacts.Vectorizer, config.Artifacts.Classifier, catalog, logger, opts...)
	if err != nil {
		logger.Fatal("loading model artifacts", zap.Error(err),
			zap.String("hint", "run `"+app+" train` first or point artifacts.* at existing files"),
		)
	}

	return a
}

func newAdvisor(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Advisor, error) {
	if config == nil || !config.Enabled {
		return nil, nil
	}

	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider %q", config.Provider)
	}

	gc := config.Gemini
	if gc == nil {
		gc = &GeminiConfig{}
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gc.APIKey,
		File:  gc.APIKeyFile,
		Env:   geminiKeyEnv,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, key, gc.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, logger, gc.MaxLogLength), nil
}

func redacted(config *Config) *Config {
	c := *config
	if c.AI != nil && c.AI.Gemini != nil && c.AI.Gemini.APIKey != "" {
		aiCfg := *c.AI
		geminiCfg := *aiCfg.Gemini
		geminiCfg.APIKey = "***"
		aiCfg.Gemini = &geminiCfg
		c.AI = &aiCfg
	}
	return &c
}
