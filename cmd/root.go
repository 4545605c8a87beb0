package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anupamd/studiq/internal/app"
	"github.com/anupamd/studiq/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "studiq",
	Short: "Offline-first study companion",
	Long:  "Studiq — personalized recommendations, study plans, and offline sync for university quizzes.",
}

func Execute() error {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDIQ_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Acting user id (overrides STUDIQ_USER env var)")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newApp builds the application for one command invocation. The caller must
// Close it.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.FromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.UserID = u
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return app.New(cmd.Context(), cfg, log)
}

// newLogger returns a development logger in debug mode, otherwise a quiet
// logger that only surfaces warnings.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}
