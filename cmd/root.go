package cmd

import (
	"log"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "gsoc-buddy"
)

type Config struct {
	Search      *github.IssueParams `mapstructure:"search"`
	Profile     *Profile            `mapstructure:"profile"`
	ExcludeFile string              `mapstructure:"exclude-file"`
	UserAgent   string              `mapstructure:"user-agent"`
	TokenFile   string              `mapstructure:"token-file"`
	MaxIssueAge string              `mapstructure:"max-issue-age"`
	AI          *AIConfig           `mapstructure:"ai"`
}

// Profile describes the user the match scores are computed against.
type Profile struct {
	Skills []string `mapstructure:"skills"`
	Level  string   `mapstructure:"level"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
	// Pace is an optional delay between batched AI calls, e.g. "2s".
	Pace string `mapstructure:"pace"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "gsoc-buddy finds GitHub issues matching your skill level using AI analysis",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "GITHUB_TOKEN_FILE"); err != nil {
		log.Fatalf("binding GITHUB_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is gsoc-buddy.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
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
