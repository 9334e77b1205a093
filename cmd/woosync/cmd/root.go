// Package cmd implements the woosync command line interface.
package cmd

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prowebkong/woosync/internal/config"
	"github.com/prowebkong/woosync/pkg/logging"
)

var (
	configFile string
	verbose    bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "woosync",
	Short: "WooCommerce catalog import CLI",
	Long: `Woosync reconciles scraped product records into a WooCommerce
catalog: it materializes the category hierarchy, provisions the product
attribute vocabulary, classifies each product into a leaf category, and
uploads normalized payloads with their images.

Re-running an import is safe: categories and attributes are matched
before creation and duplicate-term conflicts are recovered, so repeated
runs never duplicate taxonomy state.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it with a
// signal-aware context so an interrupt stops issuing remote calls.
func Execute(version, commit, date string) error {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .woosync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".woosync")
	}

	// Load .env before viper env binding so both sources work.
	_ = godotenv.Load()

	viper.SetEnvPrefix("woosync")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	config.SetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		logging.Debug().Str("file", viper.ConfigFileUsed()).Msg("Loaded config file")
	}

	if verbose {
		logging.SetLevel(zerolog.DebugLevel)
	}
}
