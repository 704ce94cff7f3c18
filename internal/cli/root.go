package cli

import (
	"fmt"
	"os"

	"github.com/litmap/litmap/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "litmap",
	Short: "Litmap - Place extraction and geocoding for Japanese literary text",
	Long: `Litmap finds place names in Japanese literary sentences and puts them
on the map.

It extracts candidate place names with layered pattern matching, filters
out personal names by reading the surrounding context, resolves each
surviving name to coordinates through a knowledge base and an external
geocoding service, and keeps everything in a local SQLite database.

Sentences go in as JSONL; places and mentions come out queryable.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("litmap v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.litmap/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default: $HOME/.litmap/litmap.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.litmap")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match LITMAP_*
	viper.SetEnvPrefix("LITMAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, overlaid by the
// config file, with API keys falling back to the environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if cfg.Verifier.APIKey == "" {
		cfg.Verifier.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Verifier.BaseURL == "" && cfg.Verifier.Provider == "ollama" {
		cfg.Verifier.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return cfg, nil
}
