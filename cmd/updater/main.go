package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourorg/connect-profile-updater/internal/config"
	"github.com/yourorg/connect-profile-updater/internal/connectapi"
	"github.com/yourorg/connect-profile-updater/internal/input"
	"github.com/yourorg/connect-profile-updater/internal/logging"
	"github.com/yourorg/connect-profile-updater/internal/metrics"
	"github.com/yourorg/connect-profile-updater/internal/runner"
)

var rootCmd = &cobra.Command{
	Use:   "updater",
	Short: "Bulk-update Amazon Connect user security profiles from a CSV file",
	Long: `Reads username,security_profile_id pairs from a CSV file (local path or
s3:// URI), resolves each username to a Connect user id, and assigns the
security profile. Outcomes are logged to the console and a per-run log file.

CSV file format:
  username,security_profile_id
  john.doe,a1b2c3d4-e5f6-7890-abcd-ef1234567890`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.String("instance-id", "", "Amazon Connect instance ID or ARN")
	f.String("csv-file", "", "path or s3:// URI of the input CSV")
	f.Duration("call-timeout", 30*time.Second, "per-call timeout for Connect API requests")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("log-dir", ".", "directory for the per-run log file")
	f.String("metrics-addr", "", "prometheus listen address (empty = disabled)")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logctx, err := logging.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logctx.Close()
	log := logctx.Logger

	log.Info("Amazon Connect security profile updater started",
		zap.String("instance_id", cfg.InstanceID),
		zap.String("csv_file", cfg.CSVFile),
		zap.String("log_file", logctx.LogFile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	metrics.Init()
	if cfg.MetricsAddr != "" {
		go func() { _ = metrics.Serve(cfg.MetricsAddr) }()
	}

	if err := input.Validate(cfg.CSVFile); err != nil {
		log.Error("input validation failed", zap.Error(err))
		return err
	}
	rc, err := input.Open(ctx, cfg.CSVFile)
	if err != nil {
		log.Error("open input failed", zap.Error(err))
		return err
	}
	defer rc.Close()

	client, err := connectapi.New(ctx, cfg.InstanceID, cfg.CallTimeout)
	if err != nil {
		log.Error("connect client init failed", zap.Error(err))
		return err
	}

	sum, err := runner.New(client, log).Run(ctx, input.NewReader(rc))
	if err != nil {
		log.Error("run aborted", zap.Error(err))
		return err
	}
	if sum.Failed > 0 {
		log.Warn("process completed with errors, check log for details",
			zap.Int("failed_updates", sum.Failed))
		return fmt.Errorf("%d of %d rows failed", sum.Failed, sum.Attempted())
	}
	log.Info("all updates completed successfully")
	return nil
}

// applyFlags overrides config values with any flags the operator set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("instance-id") {
		cfg.InstanceID, _ = f.GetString("instance-id")
	}
	if f.Changed("csv-file") {
		cfg.CSVFile, _ = f.GetString("csv-file")
	}
	if f.Changed("call-timeout") {
		cfg.CallTimeout, _ = f.GetDuration("call-timeout")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-dir") {
		cfg.LogDir, _ = f.GetString("log-dir")
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = f.GetString("metrics-addr")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
