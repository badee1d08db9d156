package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/logger"
)

const (
	app       = "whoami-engine"
	envPrefix = "WHOAMI"
)

type Config struct {
	Jobs         *JobsConfig       `mapstructure:"jobs"`
	References   *ReferencesConfig `mapstructure:"references"`
	Lexicon      string            `mapstructure:"lexicon"`
	QuestionBank string            `mapstructure:"question-bank"`
	Answers      string            `mapstructure:"answers"`
	Tagger       struct {
		StressThreshold int `mapstructure:"stress-threshold"`
	} `mapstructure:"tagger"`
	Match struct {
		Limit int `mapstructure:"limit"`
	} `mapstructure:"match"`
	Risks struct {
		Disabled []DisabledRule `mapstructure:"disabled"`
	} `mapstructure:"risks"`
}

type JobsConfig struct {
	CSV         string `mapstructure:"csv"`
	SQLite      string `mapstructure:"sqlite"`
	HTML        bool   `mapstructure:"html"`
	Separator   string `mapstructure:"separator"`
	ExcludeFile string `mapstructure:"exclude-file"`
}

type ReferencesConfig struct {
	Career        string `mapstructure:"career"`
	Communication string `mapstructure:"communication"`
	Separator     string `mapstructure:"separator"`
}

type DisabledRule struct {
	Name   string `mapstructure:"name"`
	Reason string `mapstructure:"reason"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "whoami-engine scores questionnaire answers and matches the profile against a job catalog",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is whoami-engine.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	// Defaults make every key visible to the environment lookup.
	viper.SetDefault("jobs.csv", "")
	viper.SetDefault("jobs.sqlite", "")
	viper.SetDefault("jobs.html", false)
	viper.SetDefault("jobs.separator", "")
	viper.SetDefault("jobs.exclude-file", "")
	viper.SetDefault("references.career", "")
	viper.SetDefault("references.communication", "")
	viper.SetDefault("references.separator", "")
	viper.SetDefault("lexicon", "")
	viper.SetDefault("question-bank", "")
	viper.SetDefault("answers", "")
	viper.SetDefault("tagger.stress-threshold", 0)
	viper.SetDefault("match.limit", 0)
}

func initConfig() {
	// A missing .env file is fine, a broken one is not.
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

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

// newLogger builds the command logger or exits.
func newLogger(cmd *cobra.Command) *zap.Logger {
	lg, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Fields: []zap.Field{zap.String("command", cmd.Name())},
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return lg
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Jobs == nil {
		config.Jobs = &JobsConfig{}
	}
	if config.References == nil {
		config.References = &ReferencesConfig{}
	}

	return config, nil
}
