package main

import (
	"errors"
	"fmt"
	"os"

	"trp/internal/cli"
	"trp/internal/cli/commands"
	"trp/internal/config"
	"trp/internal/domain"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "trp",
		Short:   "Test report processor",
		Long:    `Consume a test runner's lifecycle event stream and produce run reports: a machine-readable JSON artifact, a Markdown summary, a console summary block, and an optional MySQL run history.`,
		Version: version,
		// Errors are reported once by main; a failed run already printed
		// its summary and must not dump usage help.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command. A failed run is reported through the summary
	// output already, so it only needs the exit code.
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, domain.ErrRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
