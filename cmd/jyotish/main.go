package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grahalabs/jyotish/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "jyotish",
		Short: "Deterministic Vedic chart derivation and rule evaluation",
		Long: `jyotish derives structured birth charts (houses, nakshatras,
divisional charts, doshas) from pre-computed sidereal positions and
evaluates admin-authored declarative rules against them.

Every emitted interpretation is traceable to chart facts and rule
identifiers; free-text generation happens elsewhere.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/jyotish/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("house-system", "", "house system (whole_sign, equal)")
	rootCmd.PersistentFlags().IntSlice("divisional-charts", nil, "divisional charts to derive (e.g. 9,10)")
	rootCmd.PersistentFlags().String("rules", "", "rule set file overriding the stored snapshots")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("house_system", rootCmd.PersistentFlags().Lookup("house-system"))
	_ = viper.BindPFlag("divisional_charts", rootCmd.PersistentFlags().Lookup("divisional-charts"))
	_ = viper.BindPFlag("rules.path", rootCmd.PersistentFlags().Lookup("rules"))

	rootCmd.AddCommand(deriveCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(transitCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/jyotish", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("JYOTISH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, flags and env cover everything.
	}

	return setupLogging()
}

func setupLogging() error {
	level := common.ParseLevel(viper.GetString("logging.level"))
	format := viper.GetString("logging.format")

	switch format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	return common.SetupLogger(level, format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("jyotish %s\n", version)
		},
	}
}
