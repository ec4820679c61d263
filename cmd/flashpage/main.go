package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/flashpage/internal"
	"codeberg.org/snonux/flashpage/internal/cli"
	"codeberg.org/snonux/flashpage/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.ApplyConfig(flags)

	logTee := internal.NewLogTee(os.Stderr)
	logger := internal.NewLogger(logTee, flags.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := processor.NewProcessor(flags, logger, processor.WithLogTee(logTee))

	switch {
	case flags.ListVoices:
		return proc.ListVoices(ctx)
	case flags.ListModels:
		return proc.ListModels(ctx)
	case flags.Archive:
		return proc.ArchivePages()
	case flags.GUIMode:
		return proc.RunGUIMode()
	case flags.BatchFile != "":
		return proc.ProcessBatch(ctx)
	case len(args) > 0:
		return proc.ProcessText(ctx, args[0])
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}
}
