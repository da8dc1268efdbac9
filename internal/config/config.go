// Package config loads the warden configuration from the environment,
// with an optional .env file merged in first.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the flat warden configuration.
type Config struct {
	// BotToken authenticates the bot with the chat platform.
	BotToken string

	// GuildID is the guild the bot serves.
	GuildID string

	// TeamRoleID is the support-team role; it gates claims and is granted
	// access to every ticket channel.
	TeamRoleID string

	// TicketParentID is the channel category ticket channels are created
	// under (optional).
	TicketParentID string

	// ApplicationsChannelID is the moderation review surface. Empty means no
	// review surface is configured and submissions are rejected.
	ApplicationsChannelID string

	// DataDir holds state.json and warden.db.
	DataDir string
}

// Load reads configuration from the environment. A .env file in the current
// directory is merged in first when present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:              os.Getenv("BOT_TOKEN"),
		GuildID:               os.Getenv("GUILD_ID"),
		TeamRoleID:            os.Getenv("TEAM_ROLE_ID"),
		TicketParentID:        os.Getenv("TICKET_PARENT_ID"),
		ApplicationsChannelID: os.Getenv("APPLICATIONS_CHANNEL_ID"),
		DataDir:               os.Getenv("WARDEN_DATA_DIR"),
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".warden")
	}

	return cfg, nil
}

// Validate checks the fields required to run the bot.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	if c.TeamRoleID == "" {
		return fmt.Errorf("TEAM_ROLE_ID is not set")
	}
	return nil
}

// StatePath returns the path of the JSON state document.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.json")
}

// DBPath returns the path of the audit database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "warden.db")
}
