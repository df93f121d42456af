package agent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `active_provider: deepseek
model: custom-model
credential_env: TREND_API_KEYS
scratch_dir: /tmp/trend-scratch
max_workers: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ActiveProvider != "deepseek" || cfg.Model != "custom-model" {
		t.Errorf("provider fields = %+v", cfg)
	}
	if cfg.CredentialEnv != "TREND_API_KEYS" || cfg.MaxWorkers != 4 {
		t.Errorf("pool fields = %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file must error")
	}
}

func TestCredentialsCommaSplit(t *testing.T) {
	t.Setenv("TREND_TEST_KEYS", " key-1, key-2 ,,key-3 ")
	m := NewManager(Config{CredentialEnv: "TREND_TEST_KEYS"})

	pool := m.Credentials()
	want := []string{"key-1", "key-2", "key-3"}
	if len(pool) != len(want) {
		t.Fatalf("pool = %v, want %v", pool, want)
	}
	for i := range want {
		if pool[i] != want[i] {
			t.Errorf("pool[%d] = %q, want %q", i, pool[i], want[i])
		}
	}
}

func TestCredentialsSingleKeyFallback(t *testing.T) {
	t.Setenv("TREND_EMPTY_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "solo-key")
	m := NewManager(Config{CredentialEnv: "TREND_EMPTY_KEYS"})

	pool := m.Credentials()
	if len(pool) != 1 || pool[0] != "solo-key" {
		t.Errorf("pool = %v, want the single fallback key", pool)
	}
}

func TestActiveProviderDefaultsToGemini(t *testing.T) {
	m := NewManager(Config{ActiveProvider: "nonexistent"})
	if m.ActiveProvider() == nil {
		t.Fatal("active provider must never be nil")
	}
	if m.ActiveProvider() != m.ProviderByName("gemini") {
		t.Error("unknown provider names must fall back to gemini")
	}
}
