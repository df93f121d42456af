// Package agent holds the engine configuration and the registry of LLM
// providers. The credential pool for per-file rotation is resolved here from
// the environment so no other package touches credential storage.
package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"financial_trends/pkg/core/llm"
)

// Config is the YAML-backed engine configuration.
type Config struct {
	ActiveProvider string `yaml:"active_provider"` // "gemini" or "deepseek"
	Model          string `yaml:"model"`           // optional model override
	CredentialEnv  string `yaml:"credential_env"`  // env var holding comma-separated API keys
	ScratchDir     string `yaml:"scratch_dir"`     // upload scratch location, defaults to os.TempDir
	MaxWorkers     int    `yaml:"max_workers"`     // optional override of the parallelism cap
}

// LoadConfig reads the engine configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Manager resolves providers and credentials for the analysis engine.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

// NewManager creates a Manager with the built-in provider registry.
func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{Model: config.Model},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// ActiveProvider returns the configured provider, defaulting to Gemini.
func (m *Manager) ActiveProvider() llm.Provider {
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ProviderByName retrieves a provider instance by name, or nil.
func (m *Manager) ProviderByName(name string) llm.Provider {
	return m.providers[name]
}

// Credentials returns the ordered credential pool from the configured
// environment variable (comma-separated). Defaults to GEMINI_API_KEYS, then
// falls back to the single-key GEMINI_API_KEY.
func (m *Manager) Credentials() []string {
	envName := m.config.CredentialEnv
	if envName == "" {
		envName = "GEMINI_API_KEYS"
	}

	raw := os.Getenv(envName)
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}

	var pool []string
	for _, key := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			pool = append(pool, trimmed)
		}
	}
	return pool
}

// ScratchDir returns the configured scratch directory or the OS default.
func (m *Manager) ScratchDir() string {
	if m.config.ScratchDir != "" {
		return m.config.ScratchDir
	}
	return os.TempDir()
}

// MaxWorkers returns the configured worker cap, or 0 for the default.
func (m *Manager) MaxWorkers() int {
	return m.config.MaxWorkers
}
