package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/cli"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/config"
)

var (
	cfgFile   string
	version   = "dev"
	appConfig config.Config
	flushLogs = func() {}
	rootCmd   = &cobra.Command{
		Use:   "edviron",
		Short: "School payments dashboard for the terminal",
		Long: `edviron: browse, filter and export school fee transactions from the
edviron payments backend, check the status of single orders and create
payment links.

Run "edviron dashboard" for the interactive view.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/edviron/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL (default: $API_URL or http://localhost:3000)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyAPIBaseURL, rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyLoggingLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLoggingFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		zap.L().Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()
	flushLogs()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(errorMessage(err)))
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	// .env sits next to the invocation, like the web dashboard's
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.ConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}

		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EDVIRON")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	// Only the full-screen dashboard needs its logs kept off the terminal.
	if cmd.Name() != dashboardCommand && !explicitLogFile() {
		cfg.Logging.File = ""
	}

	flush, err := common.SetupLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	flushLogs = flush
	appConfig = cfg

	zap.L().Debug("configuration loaded",
		zap.String("config_file", viper.ConfigFileUsed()),
		zap.String("api", cfg.API.BaseURL))
	return nil
}

// explicitLogFile reports whether the user chose a log file rather than
// inheriting the default.
func explicitLogFile() bool {
	if _, ok := os.LookupEnv("EDVIRON_LOGGING_FILE"); ok {
		return true
	}
	return viper.InConfig(config.KeyLoggingFile)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "edviron %s\n", version)
		},
	}
}
