package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppConfigFillMissingDefaults(t *testing.T) {
	cfg := AppConfig{}
	cfg.FillMissingDefaults()

	if cfg.Connection.Host != DefaultHost {
		t.Fatalf("expected default host %q, got %q", DefaultHost, cfg.Connection.Host)
	}
	if cfg.Connection.Secure {
		t.Fatalf("expected plain ws by default")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestDefaultEnablesNotificationTypes(t *testing.T) {
	cfg := Default()
	if cfg.UI.Notifications.NotifyWhenFocused {
		t.Fatalf("expected notify_when_focused to be disabled by default")
	}
	if !cfg.UI.Notifications.Events.CrashRecorded {
		t.Fatalf("expected crash notification to be enabled by default")
	}
	if !cfg.UI.Notifications.Events.ConnectionStatus {
		t.Fatalf("expected connection status notification to be enabled by default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPreservesExplicitValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
  "connection": {
    "host": "crashbox.local:8080",
    "secure": true
  },
  "logging": {
    "level": "debug",
    "log_to_file": true
  },
  "ui": {
    "start_hidden": true,
    "notifications": {
      "notify_when_focused": true,
      "events": {
        "crash_recorded": false,
        "connection_status": false
      }
    }
  }
}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Connection.Host != "crashbox.local:8080" || !cfg.Connection.Secure {
		t.Fatalf("unexpected connection config: %+v", cfg.Connection)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.LogToFile {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if !cfg.UI.StartHidden {
		t.Fatalf("expected start_hidden=true to be preserved")
	}
	if cfg.UI.Notifications.Events.CrashRecorded || cfg.UI.Notifications.Events.ConnectionStatus {
		t.Fatalf("expected explicit false notification toggles to be preserved, got %+v", cfg.UI.Notifications.Events)
	}
}

func TestLoadMissingNotificationsUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"connection": {"host": "10.0.0.7"}}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Connection.Host != "10.0.0.7" {
		t.Fatalf("expected host to be loaded, got %q", cfg.Connection.Host)
	}
	if !cfg.UI.Notifications.Events.CrashRecorded || !cfg.UI.Notifications.Events.ConnectionStatus {
		t.Fatalf("expected notification types to default to enabled, got %+v", cfg.UI.Notifications)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*AppConfig) {}},
		{name: "host with port", mutate: func(c *AppConfig) { c.Connection.Host = "crashbox.local:81" }},
		{name: "empty host", mutate: func(c *AppConfig) { c.Connection.Host = "  " }, wantErr: true},
		{name: "host with path", mutate: func(c *AppConfig) { c.Connection.Host = "crashbox.local/ws" }, wantErr: true},
		{name: "host with empty port", mutate: func(c *AppConfig) { c.Connection.Host = "crashbox.local:" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *AppConfig) { c.Logging.Level = "trace" }, wantErr: true},
	}

	for _, tc := range tests {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Connection.Host = "crashbox.local"
	cfg.Connection.Secure = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Connection.Host = ""

	if err := Save(path, cfg); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected config file to not be written, stat err: %v", err)
	}
}
