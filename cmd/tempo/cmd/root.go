package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/tempo/internal/config"
	"github.com/MeKo-Tech/tempo/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration file path.
	cfgFile string
	// Global configuration.
	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Stopwatch instrumentation for commands and code sections",
	Long: `tempo measures elapsed wall-clock and CPU time and renders decorated,
column-aligned reports.

The run subcommand executes an external command under a stopwatch and
reports its wall and CPU time in text, table, JSON or YAML form.

Examples:
  tempo run -- sleep 2
  tempo run --output table -- make build
  tempo run --precision 1 --begin "< " --close " >" -- ./bench.sh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetBool("version")
		if v {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tempo version %s\n", version.String())
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes. This
// allows tests to execute commands without calling os.Exit().
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/tempo, /etc/tempo)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig loads configuration and configures logging.
func initConfig() {
	loader := config.NewLoader()
	cfg, err := loader.LoadWithFile(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	globalConfig = cfg
	setupLogging(cfg)
}

// setupLogging installs a text slog handler at the configured level.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.LogLevel == "debug":
		level = slog.LevelDebug
	case cfg.LogLevel == "warn":
		level = slog.LevelWarn
	case cfg.LogLevel == "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// currentConfig returns the loaded configuration, loading it on demand so
// that tests can execute commands without going through Execute.
func currentConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}
	return globalConfig
}
