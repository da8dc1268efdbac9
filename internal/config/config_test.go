package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("GUILD_ID", "guild-1")
	t.Setenv("TEAM_ROLE_ID", "role-1")
	t.Setenv("TICKET_PARENT_ID", "cat-1")
	t.Setenv("APPLICATIONS_CHANNEL_ID", "apps-1")
	t.Setenv("WARDEN_DATA_DIR", "/tmp/warden-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.BotToken != "token-123" {
		t.Errorf("expected bot token 'token-123', got %q", cfg.BotToken)
	}
	if cfg.TeamRoleID != "role-1" {
		t.Errorf("expected team role 'role-1', got %q", cfg.TeamRoleID)
	}
	if cfg.ApplicationsChannelID != "apps-1" {
		t.Errorf("expected applications channel 'apps-1', got %q", cfg.ApplicationsChannelID)
	}
	if cfg.DataDir != "/tmp/warden-test" {
		t.Errorf("expected data dir '/tmp/warden-test', got %q", cfg.DataDir)
	}
}

func TestLoad_DefaultDataDir(t *testing.T) {
	t.Setenv("WARDEN_DATA_DIR", "")
	t.Setenv("HOME", "/home/testuser")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DataDir != filepath.Join("/home/testuser", ".warden") {
		t.Errorf("expected default data dir under home, got %q", cfg.DataDir)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no bot token, got nil")
	}

	cfg.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no team role, got nil")
	}

	cfg.TeamRoleID = "role"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}

	if cfg.StatePath() != filepath.Join("/data", "state.json") {
		t.Errorf("unexpected state path %q", cfg.StatePath())
	}
	if cfg.DBPath() != filepath.Join("/data", "warden.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
}
