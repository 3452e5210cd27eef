package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/baesync/baesync/pkg/compare"
	"github.com/baesync/baesync/pkg/config"
	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/metadata"
	"github.com/baesync/baesync/pkg/models"
	"github.com/baesync/baesync/pkg/output"
	"github.com/baesync/baesync/pkg/ratelimit"
	"github.com/baesync/baesync/pkg/scanner"
	"github.com/baesync/baesync/pkg/sync"
	"github.com/baesync/baesync/pkg/transfer"
)

// SyncFlags holds sync command flags
type SyncFlags struct {
	Overwrite           bool
	Recursive           bool
	Delete              bool
	PreservePermissions bool
	PreserveTimes       bool
	PreserveOwner       bool
	PreserveGroup       bool
	DryRun              bool
	StrictChecksum      bool
	Workers             int
	Output              string
	LogFile             string
	LogFormat           string
	LogLevel            string
}

var syncFlags SyncFlags

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <source> <destination>",
		Short: "Synchronize a source tree into a destination",
		Long: `Compare the source and destination trees, classify every source file
into copy, skip, or conflict, and hand the transfer to rsync. Conflicts
abort the run unless --overwrite is given.`,
		Args: cobra.ExactArgs(2),
		RunE: runSync,
	}

	cmd.Flags().BoolVarP(&syncFlags.Overwrite, "overwrite", "o", false, "overwrite conflicting destination files")
	cmd.Flags().BoolVarP(&syncFlags.Recursive, "recursive", "r", true, "copy directories recursively")
	cmd.Flags().BoolVarP(&syncFlags.Delete, "delete", "d", false, "delete destination files absent from source")
	cmd.Flags().BoolVarP(&syncFlags.PreservePermissions, "preserve-permissions", "p", false, "preserve file permissions")
	cmd.Flags().BoolVarP(&syncFlags.PreserveTimes, "preserve-times", "t", true, "preserve modification times")
	cmd.Flags().BoolVarP(&syncFlags.PreserveOwner, "preserve-owner", "O", false, "preserve file owner")
	cmd.Flags().BoolVarP(&syncFlags.PreserveGroup, "preserve-group", "g", false, "preserve file group")
	cmd.Flags().BoolVar(&syncFlags.DryRun, "dry-run", false, "compare only, don't transfer")
	cmd.Flags().BoolVar(&syncFlags.StrictChecksum, "strict-checksum", false, "treat missing checksums as conflicts")
	cmd.Flags().IntVar(&syncFlags.Workers, "workers", 0, "checksum worker pool size (default from config)")
	cmd.Flags().StringVar(&syncFlags.Output, "output", "", "output format: human, json")
	cmd.Flags().StringVarP(&syncFlags.LogFile, "log-file", "l", "", "log file path (default from config)")
	cmd.Flags().StringVar(&syncFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&syncFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
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
	applySyncFlags(cmd, cfg)

	logger, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	formatter := createFormatter(cfg)
	formatter.Start(os.Stdout)

	engine := sync.NewEngine(
		buildReconciler(cfg, logger, formatter),
		transfer.NewRsyncExecutor(logger),
		formatter,
		logger,
	)

	remote := metadata.IsRemoteURI(source) || metadata.IsRemoteURI(dest)
	if metadata.IsRemoteURI(source) {
		logRemoteInfo(ctx, logger, source)
	}

	op := &sync.Operation{
		SourcePath:  source,
		DestPath:    dest,
		Overwrite:   syncFlags.Overwrite,
		DryRun:      syncFlags.DryRun,
		SkipCompare: remote,
		Transfer: transfer.Options{
			Delete:              cfg.Transfer.Delete,
			PreservePermissions: cfg.Transfer.PreservePermissions,
			PreserveTimes:       cfg.Transfer.PreserveTimes,
			PreserveOwner:       cfg.Transfer.PreserveOwner,
			PreserveGroup:       cfg.Transfer.PreserveGroup,
			Recursive:           cfg.Transfer.Recursive,
			Progress:            cfg.Transfer.Progress,
		},
	}

	report, err := engine.Run(ctx, op)
	if err != nil {
		return err
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// logRemoteInfo resolves remote source metadata for the log. A listing
// failure is reported but never blocks the transfer; the primitive does
// its own remote validation.
func logRemoteInfo(ctx context.Context, logger logging.Logger, uri string) {
	provider := metadata.NewRemoteFileProvider(logger, transfer.NewRsyncLister(logger))
	info, err := provider.RemoteFileInfo(ctx, uri)
	if err != nil {
		logger.Warn(ctx, "Remote metadata unavailable", logging.Fields{
			"uri":   uri,
			"error": err.Error(),
		})
		return
	}
	logger.Info(ctx, "Remote source", logging.Fields{
		"uri":      uri,
		"size":     info.Size,
		"modified": info.ModifiedDate.String(),
	})
}

// buildReconciler wires provider, scanner, and comparator from config
func buildReconciler(cfg *config.Config, logger logging.Logger, formatter output.Formatter) *compare.Reconciler {
	provider := metadata.NewLocalProvider(logger)
	provider.SetChunkSize(cfg.Comparison.ChunkSize)
	provider.SetBandwidthLimit(ratelimit.NewLimiter(cfg.Comparison.BandwidthLimit))

	sc := scanner.New(provider, logger, cfg.Comparison.Workers)
	sc.SetFileObserver(func(info *models.FileInfo) {
		formatter.FileScanned(info)
	})

	files := compare.NewFileComparator(logger, compare.Options{
		StrictChecksum: cfg.Comparison.StrictChecksum,
	})

	return compare.NewReconciler(sc, files, logger)
}

// applySyncFlags overlays explicitly set flags onto the loaded config
func applySyncFlags(cmd *cobra.Command, cfg *config.Config) {
	cfg.Transfer.Recursive = syncFlags.Recursive
	if cmd.Flags().Changed("delete") {
		cfg.Transfer.Delete = syncFlags.Delete
	}
	if cmd.Flags().Changed("preserve-permissions") {
		cfg.Transfer.PreservePermissions = syncFlags.PreservePermissions
	}
	if cmd.Flags().Changed("preserve-times") {
		cfg.Transfer.PreserveTimes = syncFlags.PreserveTimes
	}
	if cmd.Flags().Changed("preserve-owner") {
		cfg.Transfer.PreserveOwner = syncFlags.PreserveOwner
	}
	if cmd.Flags().Changed("preserve-group") {
		cfg.Transfer.PreserveGroup = syncFlags.PreserveGroup
	}
	if cmd.Flags().Changed("strict-checksum") {
		cfg.Comparison.StrictChecksum = syncFlags.StrictChecksum
	}
	if syncFlags.Workers > 0 {
		cfg.Comparison.Workers = syncFlags.Workers
	}
	if syncFlags.Output != "" {
		cfg.Output.Format = syncFlags.Output
	}
	if syncFlags.LogFile != "" {
		cfg.Logging.File = syncFlags.LogFile
		cfg.Logging.Enabled = true
	}
	if syncFlags.LogFormat != "" {
		cfg.Logging.Format = syncFlags.LogFormat
	}
	if syncFlags.LogLevel != "" {
		cfg.Logging.Level = syncFlags.LogLevel
	}
	if GetGlobalFlags().Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}
	if GetGlobalFlags().Verbose {
		cfg.Logging.Level = "debug"
	}
}

// loadConfig loads the configured or default config file
func loadConfig() (*config.Config, error) {
	if path := GetGlobalFlags().ConfigFile; path != "" {
		return config.LoadFromFile(path)
	}
	return config.LoadDefault()
}

// createLogger builds the run's logger from config
func createLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	format := logging.FormatText
	if cfg.Logging.Format == "json" {
		format = logging.FormatJSON
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Console:    cfg.Logging.Console,
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 5,
	})
}

// createFormatter builds the output formatter from config
func createFormatter(cfg *config.Config) output.Formatter {
	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter()
	case cfg.Output.Progress && !cfg.Output.Quiet:
		return output.NewProgressFormatter()
	default:
		return output.NewHumanFormatter(cfg.Output.Quiet)
	}
}
