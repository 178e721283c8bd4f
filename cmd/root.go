package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillgap/internal/api"
	"github.com/spigell/skillgap/internal/dataset"
	"github.com/spigell/skillgap/internal/trainer"
)

const (
	app       = "skillgap"
	envPrefix = "SKILLGAP"
)

type Config struct {
	Artifacts     *ArtifactsConfig `mapstructure:"artifacts"`
	Train         *TrainConfig     `mapstructure:"train"`
	Server        api.Config       `mapstructure:"server"`
	Catalog       map[string]any   `mapstructure:"catalog"`
	AI            *AIConfig        `mapstructure:"ai"`
	PreviewLength int              `mapstructure:"preview-length"`
}

type ArtifactsConfig struct {
	Vectorizer string `mapstructure:"vectorizer"`
	Classifier string `mapstructure:"classifier"`
}

type TrainConfig struct {
	Resumes         dataset.Source  `mapstructure:"resumes"`
	JobDescriptions dataset.Source  `mapstructure:"job-descriptions"`
	OutDir          string          `mapstructure:"out-dir"`
	Options         trainer.Options `mapstructure:"options"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillgap matches resumes against job roles and reports missing skills",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillgap.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("artifacts.vectorizer", "artifacts/"+trainer.VectorizerFile)
	v.SetDefault("artifacts.classifier", "artifacts/"+trainer.ClassifierFile)

	v.SetDefault("train.resumes.path", "resume_dataset.csv")
	v.SetDefault("train.resumes.text-column", "Resume")
	v.SetDefault("train.resumes.role-column", "Role")
	v.SetDefault("train.job-descriptions.path", "job_descriptions.csv")
	v.SetDefault("train.job-descriptions.text-column", "JobDescription")
	v.SetDefault("train.job-descriptions.role-column", "Role")
	v.SetDefault("train.out-dir", "artifacts")

	opts := trainer.DefaultOptions()
	v.SetDefault("train.options.test-size", opts.TestSize)
	v.SetDefault("train.options.seed", opts.Seed)
	v.SetDefault("train.options.vectorizer.max-features", opts.Vectorizer.MaxFeatures)
	v.SetDefault("train.options.vectorizer.stop-words", opts.Vectorizer.StopWords)
	v.SetDefault("train.options.classifier.c", opts.Classifier.C)
	v.SetDefault("train.options.classifier.learning-rate", opts.Classifier.LearningRate)
	v.SetDefault("train.options.classifier.max-iter", opts.Classifier.MaxIter)
	v.SetDefault("train.options.classifier.tol", opts.Classifier.Tol)

	server := api.DefaultConfig()
	v.SetDefault("server.addr", server.Addr)
	v.SetDefault("server.body-limit", server.BodyLimit)
	v.SetDefault("server.read-timeout", server.ReadTimeout)
	v.SetDefault("server.write-timeout", server.WriteTimeout)
	v.SetDefault("server.allow-origins", server.AllowOrigins)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "")
	v.SetDefault("ai.gemini.max-log-length", 200)

	v.SetDefault("preview-length", 500)
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
