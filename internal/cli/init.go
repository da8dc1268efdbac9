package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const envSkeleton = `# warden configuration
BOT_TOKEN=
GUILD_ID=
TEAM_ROLE_ID=
TICKET_PARENT_ID=
APPLICATIONS_CHANNEL_ID=
# WARDEN_DATA_DIR=~/.warden
`

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .env configuration skeleton",
		Long: `Create a .env file in the current directory with the environment
variables warden reads at startup. Existing files are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(".env"); err == nil {
				return fmt.Errorf(".env already exists, refusing to overwrite")
			}

			if err := os.WriteFile(".env", []byte(envSkeleton), 0o600); err != nil {
				return fmt.Errorf("failed to write .env: %w", err)
			}

			color.Green("✓ Created .env")
			fmt.Println("Fill in BOT_TOKEN and TEAM_ROLE_ID, then run `warden run`.")
			return nil
		},
	}

	return cmd
}
