package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baesync/baesync/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "baesync",
		Short: "File synchronization tool built on rsync",
		Long: `baesync compares a source and destination tree, classifies every
source file into copy, skip, or conflict, and delegates the actual byte
transfer to rsync. Conflicts block the transfer unless overwriting is
explicitly requested.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewSyncCommand())
	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(version, commit, date))

	return rootCmd.Execute()
}
