package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/tainn/sub-sync/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	work := t.TempDir()
	chdir(t, work)
	return work
}

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected no config file in isolated HOME")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if *cfg != config.Default() {
		t.Fatalf("expected defaults, got %+v", *cfg)
	}
	if cfg.Encoding != "ISO-8859-1" {
		t.Errorf("unexpected default encoding %q", cfg.Encoding)
	}
	if cfg.NegativePolicy != "keep" {
		t.Errorf("unexpected default policy %q", cfg.NegativePolicy)
	}
	if !cfg.Backup.Lock {
		t.Error("expected lock enabled by default")
	}
}

func TestLoadProjectFile(t *testing.T) {
	work := isolate(t)

	content := `encoding = "windows-1252"
negative_policy = "Clamp"

[backup]
base = 1
digits = 2
lock = false
`
	if err := os.WriteFile(filepath.Join(work, config.ProjectFileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if cfg.Encoding != "windows-1252" {
		t.Errorf("unexpected encoding %q", cfg.Encoding)
	}
	if cfg.NegativePolicy != "clamp" {
		t.Errorf("expected normalized policy clamp, got %q", cfg.NegativePolicy)
	}
	if cfg.Backup != (config.Backup{Base: 1, Digits: 2, Lock: false}) {
		t.Errorf("unexpected backup settings %+v", cfg.Backup)
	}
}

func TestLoadExplicitPathRoundTrip(t *testing.T) {
	isolate(t)

	want := config.Default()
	want.NegativePolicy = "drop"
	want.Backup.Digits = 3

	data, err := toml.Marshal(want)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path %q, got %q (exists=%v)", path, resolved, exists)
	}
	if *cfg != want {
		t.Errorf("got %+v, want %+v", *cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad policy", `negative_policy = "zero"`, "negative_policy"},
		{"bad encoding", `encoding = "klingon"`, "encoding"},
		{"negative base", "[backup]\nbase = -1", "backup.base"},
		{"too many digits", "[backup]\ndigits = 12", "backup.digits"},
		{"unknown key", `offset = 2`, "parse config"},
		{"invalid toml", `encoding = `, "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected %q in error, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	isolate(t)
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

// chdir changes into dir for the duration of the test (equivalent of t.Chdir on Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory %s: %v", prev, err)
		}
	})
}
