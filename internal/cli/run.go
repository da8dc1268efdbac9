// Package cli implements the warden command surface.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/warden/internal/adapters/discord"
	"github.com/example/warden/internal/config"
	"github.com/example/warden/internal/wire"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the support bot",
		Long: `Connect to Discord and serve the support ticket and application
workflows until interrupted.

Configuration is read from the environment (and .env if present):
  BOT_TOKEN                - bot token (required)
  TEAM_ROLE_ID             - support team role id (required)
  GUILD_ID                 - guild to operate in
  TICKET_PARENT_ID         - category channel for ticket channels
  APPLICATIONS_CHANNEL_ID  - channel for application review posts
  WARDEN_DATA_DIR          - state directory (default ~/.warden)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			session, err := discordgo.New("Bot " + cfg.BotToken)
			if err != nil {
				return fmt.Errorf("failed to create discord session: %w", err)
			}
			session.Identify.Intents = discordgo.IntentsGuilds |
				discordgo.IntentsGuildMessages |
				discordgo.IntentsGuildMembers |
				discordgo.IntentsDirectMessages |
				discordgo.IntentMessageContent

			gateway := discord.NewGateway(session, cfg)
			platform := wire.Platform{
				Gateway:    gateway,
				Roles:      gateway,
				Applicants: discord.NewApplicantNotifier(session),
				Review:     discord.NewReviewPoster(session, cfg),
			}

			services, err := wire.New(cfg, platform)
			if err != nil {
				return fmt.Errorf("failed to wire services: %w", err)
			}
			defer services.Close()

			handler := discord.NewHandler(services.Tickets, services.Applications, services.Submissions, cfg)
			handler.Register(session)

			if err := session.Open(); err != nil {
				return fmt.Errorf("failed to open gateway connection: %w", err)
			}
			defer session.Close()

			if err := handler.RegisterCommands(session); err != nil {
				return err
			}

			color.Green("✓ Connected as %s", session.State.User.Username)
			fmt.Println("Press Ctrl+C to stop.")

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			fmt.Println()
			fmt.Println("Shutting down.")
			return nil
		},
	}

	return cmd
}
