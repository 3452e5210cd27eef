package cli

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/baesync/baesync/pkg/models"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	StrictChecksum bool
	Workers        int
	Output         string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command. It runs the
// reconciliation without transferring anything.
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <source> <destination>",
		Short: "Compare two trees without transferring",
		Long: `Scan both trees and report which files would be copied, which are
identical, and which conflict. Exits non-zero when conflicts exist.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().BoolVar(&compareFlags.StrictChecksum, "strict-checksum", false, "treat missing checksums as conflicts")
	cmd.Flags().IntVar(&compareFlags.Workers, "workers", 0, "checksum worker pool size (default from config)")
	cmd.Flags().StringVar(&compareFlags.Output, "output", "", "output format: human, json")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, dest := args[0], args[1]
	if err := validateSyncPaths(source, dest); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strict-checksum") {
		cfg.Comparison.StrictChecksum = compareFlags.StrictChecksum
	}
	if compareFlags.Workers > 0 {
		cfg.Comparison.Workers = compareFlags.Workers
	}
	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}
	if GetGlobalFlags().Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	formatter := createFormatter(cfg)
	formatter.Start(os.Stdout)

	reconciler := buildReconciler(cfg, logger, formatter)

	report := &models.RunReport{
		RunID:      uuid.New().String(),
		SourcePath: source,
		DestPath:   dest,
		DryRun:     true,
		StartTime:  time.Now(),
		Status:     models.StatusSuccess,
	}

	result, err := reconciler.CompareDirectories(ctx, source, dest)
	if err != nil {
		formatter.Error(err)
		return err
	}
	report.Reconciliation = result
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	if result.HasConflicts() {
		report.Status = models.StatusConflicts
	}

	formatter.Reconciliation(result)
	formatter.Complete(report)

	os.Exit(report.Status.ExitCode())
	return nil
}
