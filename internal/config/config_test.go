package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: "http://10.0.0.5:9000"
  timeout: 15s
search:
  default_limit: 20
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:9000" || cfg.API.Timeout != 15*time.Second {
		t.Errorf("unexpected api config: %+v", cfg.API)
	}
	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
watch:
  directories: ["./journal"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Watch.Directories) != 1 {
		t.Fatalf("watch directories: got %d", len(cfg.Watch.Directories))
	}
	want := filepath.Join(dir, "journal")
	if cfg.Watch.Directories[0] != want {
		t.Errorf("watch directory = %s, want %s", cfg.Watch.Directories[0], want)
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOrDefault_missingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("base url = %s", cfg.API.BaseURL)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("default base url: got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("default timeout should be zero (none), got %s", cfg.API.Timeout)
	}
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("search limits: got %+v", cfg.Search)
	}
	if cfg.Logs.ListLimit != 10 || cfg.Logs.ResetDelay != 3*time.Second {
		t.Errorf("logs config: got %+v", cfg.Logs)
	}
	if len(cfg.Watch.Extensions) != 7 || cfg.Watch.Extensions[0] != ".txt" {
		t.Errorf("watch extensions: got %v", cfg.Watch.Extensions)
	}
	if cfg.Stub.Host != "localhost" || cfg.Stub.Port != 8000 {
		t.Errorf("stub config: got %+v", cfg.Stub)
	}
}

func TestWatchConfig_RecursiveOrDefault(t *testing.T) {
	t.Run("nil_returns_false", func(t *testing.T) {
		w := &WatchConfig{}
		if got := w.RecursiveOrDefault(); got {
			t.Errorf("RecursiveOrDefault() = %v, want false", got)
		}
	})
	t.Run("true_returns_true", func(t *testing.T) {
		v := true
		w := &WatchConfig{Recursive: &v}
		if got := w.RecursiveOrDefault(); !got {
			t.Errorf("RecursiveOrDefault() = %v, want true", got)
		}
	})
}

func TestResolveAPI(t *testing.T) {
	env := func(vals map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vals[k]
			return v, ok
		}
	}
	tests := []struct {
		name    string
		base    string
		env     map[string]string
		flag    string
		want    string
		wantErr bool
	}{
		{"config value kept", "http://localhost:8000", nil, "", "http://localhost:8000", false},
		{"env overrides config", "http://localhost:8000", map[string]string{EnvAPIURL: "http://api:9000"}, "", "http://api:9000", false},
		{"flag overrides env", "http://localhost:8000", map[string]string{EnvAPIURL: "http://api:9000"}, "https://prod.example", "https://prod.example", false},
		{"trailing slash trimmed", "http://localhost:8000/", nil, "", "http://localhost:8000", false},
		{"blank env ignored", "http://localhost:8000", map[string]string{EnvAPIURL: "  "}, "", "http://localhost:8000", false},
		{"bad scheme", "ftp://localhost", nil, "", "", true},
		{"missing host", "http://", nil, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{API: APIConfig{BaseURL: tt.base}}
			err := cfg.ResolveAPI(env(tt.env), tt.flag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveAPI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.API.BaseURL != tt.want {
				t.Errorf("base url = %s, want %s", cfg.API.BaseURL, tt.want)
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "saved.yaml")
	cfg := &Config{
		API:  APIConfig{BaseURL: "http://localhost:9090", Timeout: 2 * time.Second},
		Stub: StubConfig{Host: "0.0.0.0", Port: 9090},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Stub.Port != 9090 || loaded.API.Timeout != 2*time.Second {
		t.Errorf("loaded: got %+v", loaded)
	}
}
