package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
server:
  port: 9090

mysql:
  host: 10.0.0.5
  port: 3307
  user: corkboard
  password: hunter2
  database: corkboard_prod

github:
  webhook_secret: whsec
  token: ghp_abc123

notify:
  slack:
    bot_token: xoxb-test
    channel_id: C0123
  discord:
    bot_token: discord-test
    channel_id: "987654"

sweep:
  schedule: "*/15 * * * *"
`

const minimalYAML = `
mysql:
  database: corkboard_dev
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.MySQL.Host != "10.0.0.5" {
		t.Errorf("MySQL.Host = %q, want %q", cfg.MySQL.Host, "10.0.0.5")
	}
	if cfg.MySQL.Port != 3307 {
		t.Errorf("MySQL.Port = %d, want 3307", cfg.MySQL.Port)
	}
	if cfg.MySQL.User != "corkboard" {
		t.Errorf("MySQL.User = %q, want %q", cfg.MySQL.User, "corkboard")
	}
	if cfg.MySQL.Database != "corkboard_prod" {
		t.Errorf("MySQL.Database = %q, want %q", cfg.MySQL.Database, "corkboard_prod")
	}
	if cfg.GitHub.WebhookSecret != "whsec" {
		t.Errorf("GitHub.WebhookSecret = %q, want %q", cfg.GitHub.WebhookSecret, "whsec")
	}
	if cfg.GitHub.Token != "ghp_abc123" {
		t.Errorf("GitHub.Token = %q, want %q", cfg.GitHub.Token, "ghp_abc123")
	}
	if cfg.Notify.Slack.ChannelID != "C0123" {
		t.Errorf("Notify.Slack.ChannelID = %q, want %q", cfg.Notify.Slack.ChannelID, "C0123")
	}
	if cfg.Notify.Discord.ChannelID != "987654" {
		t.Errorf("Notify.Discord.ChannelID = %q, want %q", cfg.Notify.Discord.ChannelID, "987654")
	}
	if cfg.Sweep.Schedule != "*/15 * * * *" {
		t.Errorf("Sweep.Schedule = %q, want %q", cfg.Sweep.Schedule, "*/15 * * * *")
	}
	if !cfg.Connected() {
		t.Error("Connected() = false, want true with token set")
	}
}

func TestParse_MinimalConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.MySQL.Host != "127.0.0.1" {
		t.Errorf("MySQL.Host = %q, want %q (default)", cfg.MySQL.Host, "127.0.0.1")
	}
	if cfg.MySQL.Port != 3306 {
		t.Errorf("MySQL.Port = %d, want 3306 (default)", cfg.MySQL.Port)
	}
	if cfg.MySQL.User != "root" {
		t.Errorf("MySQL.User = %q, want %q (default)", cfg.MySQL.User, "root")
	}
}

func TestParse_SecretsFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_WEBHOOK_SECRET", "env-secret")
	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GitHub.WebhookSecret != "env-secret" {
		t.Errorf("WebhookSecret = %q, want env-secret", cfg.GitHub.WebhookSecret)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("Token = %q, want env-token", cfg.GitHub.Token)
	}
}

func TestParse_FileValueBeatsEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GitHub.Token != "ghp_abc123" {
		t.Errorf("Token = %q, want file value ghp_abc123", cfg.GitHub.Token)
	}
}

func TestParse_TokenFromTokenFile(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("ghp_fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	yaml := "mysql:\n  database: d\ngithub:\n  token_file: " + path + "\n"
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GitHub.Token != "ghp_fromfile" {
		t.Errorf("Token = %q, want ghp_fromfile (trimmed)", cfg.GitHub.Token)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "slack token without channel",
			yaml: "mysql:\n  database: d\nnotify:\n  slack:\n    bot_token: xoxb-x\n",
			want: "notify.slack.channel_id",
		},
		{
			name: "discord token without channel",
			yaml: "mysql:\n  database: d\nnotify:\n  discord:\n    bot_token: x\n",
			want: "notify.discord.channel_id",
		},
		{
			name: "port out of range",
			yaml: "server:\n  port: 99999\nmysql:\n  database: d\n",
			want: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("{not yaml"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
