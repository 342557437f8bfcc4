package mailer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smtp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
servers:
  - host: smtp-a.example.com
    port: "587"
    connections: 4
    sendTimeout: 15
    auth:
      user: pulse
      password: secret
  - host: smtp-b.example.com
    port: "25"
from: SurveyPulse <noreply@example.com>
replyTo:
  - support@example.com
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Servers) != 2 {
		t.Fatalf("servers len = %d, want 2", len(cfg.Servers))
	}
	if got := cfg.Servers[0].Address(); got != "smtp-a.example.com:587" {
		t.Fatalf("address = %q", got)
	}
	if cfg.Servers[0].Auth.Username != "pulse" || cfg.Servers[0].SendTimeout != 15 {
		t.Fatalf("first server = %+v", cfg.Servers[0])
	}
	if cfg.From == "" || len(cfg.ReplyTo) != 1 {
		t.Fatalf("sender headers = %q / %v", cfg.From, cfg.ReplyTo)
	}
}

func TestLoadConfigRejectsEmptyServers(t *testing.T) {
	path := writeConfig(t, "from: noreply@example.com\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for empty server list")
	}
}

func TestLoadConfigRejectsMissingFrom(t *testing.T) {
	path := writeConfig(t, `
servers:
  - host: smtp.example.com
    port: "587"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing from address")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
servers:
  - host: smtp.example.com
    port: "587"
from: noreply@example.com
smtpRetries: 3
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected strict parse error for unknown key")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
