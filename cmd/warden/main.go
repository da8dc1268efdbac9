package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/warden/internal/cli"
	"github.com/example/warden/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "warden",
		Short:   "Warden - support ticket and application bot for the Mineset community",
		Version: version.String(),
		Long: `Warden runs the Mineset community support desk: category-based support
tickets with claiming, priorities, and audited closure, plus a DM-driven
builder application intake flow with review and moderation.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
