package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFileName = "config.json"

	// Default values for configuration fields
	DefaultDirName        = ".onboard"
	DefaultStoreBackend   = BackendFile
	DefaultStorageKey     = "smart_onboard_v2_persistent"
	DefaultAdminCode      = "2026"
	DefaultProvider       = ProviderOpenAI
	DefaultAPIKeyEnv      = "OPENAI_API_KEY"
	DefaultTimeoutSeconds = 60
	DefaultLogFile        = "onboard.log"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Narrative providers
const (
	ProviderOpenAI  = "openai"
	ProviderClaude  = "claude"
	ProviderOffline = "offline"
)

// Options locates the configuration directory
type Options struct {
	ConfigHome string // Override for the home directory
	DirName    string // Name of the config directory (default: ".onboard")
}

// DefaultOptions returns options rooted at the user's home directory
func DefaultOptions() Options {
	home, _ := os.UserHomeDir()
	return Options{
		ConfigHome: home,
		DirName:    DefaultDirName,
	}
}

// Dir returns the configuration directory
func (o Options) Dir() string {
	return filepath.Join(o.ConfigHome, o.DirName)
}

// Path returns the configuration file
func (o Options) Path() string {
	return filepath.Join(o.Dir(), configFileName)
}

// Narrative configures the text-generation backend
type Narrative struct {
	Provider       string   `json:"provider"`
	BaseURL        string   `json:"base_url,omitempty"`
	Model          string   `json:"model,omitempty"`
	APIKey         string   `json:"api_key,omitempty"`
	APIKeyEnv      string   `json:"api_key_env,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
	Command        []string `json:"command,omitempty"`
}

// ResolveAPIKey returns the configured key, falling back to the environment
func (n Narrative) ResolveAPIKey() string {
	if n.APIKey != "" {
		return n.APIKey
	}
	if n.APIKeyEnv != "" {
		return os.Getenv(n.APIKeyEnv)
	}
	return ""
}

// Config holds onboard configuration
type Config struct {
	StoreBackend string    `json:"store_backend"`
	StoreDir     string    `json:"store_dir,omitempty"` // Defaults to the config directory
	StorageKey   string    `json:"storage_key"`
	AdminCode    string    `json:"admin_code"`
	LogFile      string    `json:"log_file,omitempty"`
	Watch        bool      `json:"watch,omitempty"`
	Narrative    Narrative `json:"narrative"`

	// UnknownFields stores any fields from the config file that aren't recognized.
	// These are preserved when saving to avoid data loss.
	UnknownFields map[string]interface{} `json:"-"`

	opts Options
}

// knownConfigFields lists the field names we recognize in config JSON
var knownConfigFields = map[string]bool{
	"store_backend": true,
	"store_dir":     true,
	"storage_key":   true,
	"admin_code":    true,
	"log_file":      true,
	"watch":         true,
	"narrative":     true,
}

// UnmarshalJSON captures unknown fields alongside the known ones
func (c *Config) UnmarshalJSON(data []byte) error {
	var rawMap map[string]interface{}
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	// Type alias avoids recursing into this method
	type configAlias Config
	var alias configAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	c.StoreBackend = alias.StoreBackend
	c.StoreDir = alias.StoreDir
	c.StorageKey = alias.StorageKey
	c.AdminCode = alias.AdminCode
	c.LogFile = alias.LogFile
	c.Watch = alias.Watch
	c.Narrative = alias.Narrative

	c.UnknownFields = make(map[string]interface{})
	for key, value := range rawMap {
		if !knownConfigFields[key] {
			c.UnknownFields[key] = value
		}
	}
	return nil
}

// MarshalJSON writes known fields over any preserved unknown ones
func (c *Config) MarshalJSON() ([]byte, error) {
	result := make(map[string]interface{})
	for key, value := range c.UnknownFields {
		result[key] = value
	}

	result["store_backend"] = c.StoreBackend
	result["storage_key"] = c.StorageKey
	result["admin_code"] = c.AdminCode
	result["narrative"] = c.Narrative
	if c.StoreDir != "" {
		result["store_dir"] = c.StoreDir
	}
	if c.LogFile != "" {
		result["log_file"] = c.LogFile
	}
	if c.Watch {
		result["watch"] = c.Watch
	}

	return json.Marshal(result)
}

// GetUnknownFields returns the list of unrecognized field names
func (c *Config) GetUnknownFields() []string {
	keys := make([]string, 0, len(c.UnknownFields))
	for key := range c.UnknownFields {
		keys = append(keys, key)
	}
	return keys
}

// DefaultConfig returns a configuration with every default applied
func DefaultConfig() *Config {
	return &Config{
		StoreBackend: DefaultStoreBackend,
		StorageKey:   DefaultStorageKey,
		AdminCode:    DefaultAdminCode,
		LogFile:      DefaultLogFile,
		Narrative: Narrative{
			Provider:       DefaultProvider,
			APIKeyEnv:      DefaultAPIKeyEnv,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		UnknownFields: make(map[string]interface{}),
	}
}

// applyDefaults fills fields left empty in a loaded file
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.StoreBackend == "" {
		c.StoreBackend = d.StoreBackend
	}
	if c.StorageKey == "" {
		c.StorageKey = d.StorageKey
	}
	if c.AdminCode == "" {
		c.AdminCode = d.AdminCode
	}
	if c.Narrative.Provider == "" {
		c.Narrative.Provider = d.Narrative.Provider
	}
	if c.Narrative.APIKeyEnv == "" && c.Narrative.APIKey == "" && c.Narrative.Provider == ProviderOpenAI {
		c.Narrative.APIKeyEnv = d.Narrative.APIKeyEnv
	}
	if c.Narrative.TimeoutSeconds <= 0 {
		c.Narrative.TimeoutSeconds = d.Narrative.TimeoutSeconds
	}
	if c.UnknownFields == nil {
		c.UnknownFields = make(map[string]interface{})
	}
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid store_backend: %s (must be file or sqlite)", c.StoreBackend)
	}
	switch c.Narrative.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderOffline:
	default:
		return fmt.Errorf("invalid narrative provider: %s (must be openai, claude, or offline)", c.Narrative.Provider)
	}
	return nil
}

// Load loads configuration from ~/.onboard/config.json
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions loads configuration, creating the file with defaults when
// absent. After loading, the config is saved back so the file reflects the
// full structure.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.ConfigHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		opts.ConfigHome = home
	}
	if opts.DirName == "" {
		opts.DirName = DefaultDirName
	}

	configPath := opts.Path()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		config.opts = opts
		if err := config.SaveWithOptions(opts); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.applyDefaults()
	config.opts = opts

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := config.SaveWithOptions(opts); err != nil {
		return nil, fmt.Errorf("failed to save config with defaults: %w", err)
	}

	return &config, nil
}

// Options returns where the config was loaded from
func (c *Config) Options() Options {
	if c.opts.ConfigHome == "" {
		return DefaultOptions()
	}
	return c.opts
}

// Save persists the configuration where it was loaded from
func (c *Config) Save() error {
	return c.SaveWithOptions(c.Options())
}

// SaveWithOptions persists the configuration with custom options
func (c *Config) SaveWithOptions(opts Options) error {
	if opts.ConfigHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		opts.ConfigHome = home
	}
	if opts.DirName == "" {
		opts.DirName = DefaultDirName
	}

	if err := os.MkdirAll(opts.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API key
	if err := os.WriteFile(opts.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResolvedStoreDir returns the directory holding persisted data
func (c *Config) ResolvedStoreDir() string {
	if c.StoreDir != "" {
		return c.StoreDir
	}
	return c.Options().Dir()
}

// ResolvedLogFile returns the absolute log file path, or "" when disabled
func (c *Config) ResolvedLogFile() string {
	if c.LogFile == "" {
		return ""
	}
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.Options().Dir(), c.LogFile)
}
