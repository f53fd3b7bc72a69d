// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads folio's settings.
//
// Configuration file location: ~/.folio/config.toml (FOLIO_HOME moves the
// directory). A .env file in the working directory is read first so FOLIO_*
// variables can live there.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/session"
	"github.com/palash-droid/folio/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete folio configuration.
type Config struct {
	Terminal  TerminalConfig  `toml:"terminal" json:"terminal"`
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`
	Content   ContentConfig   `toml:"content" json:"content"`
	Server    ServerConfig    `toml:"server" json:"server"`
	Logging   LoggingConfig   `toml:"logging" json:"logging"`
	UI        UIConfig        `toml:"ui" json:"ui"`
}

// TerminalConfig controls the interpreter session.
type TerminalConfig struct {
	// HistoryLimit caps the persisted command history, 1..50.
	HistoryLimit int `toml:"history_limit" json:"history_limit"`

	// HistoryBackend is "file", "sqlite" or "memory".
	HistoryBackend string `toml:"history_backend" json:"history_backend"`

	// DataDir holds history and the sqlite database. Defaults to the config dir.
	DataDir string `toml:"data_dir" json:"data_dir"`

	// TypingEffect reveals output character by character in the TUI.
	TypingEffect bool `toml:"typing_effect" json:"typing_effect"`
}

// AssistantConfig controls the query assistant.
type AssistantConfig struct {
	// Threshold is reported for reference only; it cannot be changed.
	Threshold float64 `toml:"threshold" json:"threshold"`

	// ChatDelay is the pause before the chat widget shows a reply.
	ChatDelay Duration `toml:"chat_delay" json:"chat_delay"`
}

// ContentConfig locates the profile and blog posts.
type ContentConfig struct {
	// ProfilePath replaces the embedded profile when set.
	ProfilePath string `toml:"profile_path" json:"profile_path"`

	// BlogDir replaces the embedded posts when set.
	BlogDir string `toml:"blog_dir" json:"blog_dir"`

	// CacheTTL expires loaded posts; zero keeps them until invalidated.
	CacheTTL Duration `toml:"cache_ttl" json:"cache_ttl"`

	// Watch reloads posts from BlogDir when files change.
	Watch bool `toml:"watch" json:"watch"`
}

// ServerConfig configures `folio serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr" json:"addr"`
	AllowedOrigins  []string `toml:"allowed_origins" json:"allowed_origins"`
	RateLimit       float64  `toml:"rate_limit" json:"rate_limit"` // requests per second per client
	RateBurst       int      `toml:"rate_burst" json:"rate_burst"`
	SessionTTL      Duration `toml:"session_ttl" json:"session_ttl"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" json:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger and its rotating file.
type LoggingConfig struct {
	Level      string `toml:"level" json:"level"`
	File       string `toml:"file" json:"file"`
	Console    bool   `toml:"console" json:"console"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `toml:"compress" json:"compress"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme"`

	// RainDuration is how long the matrix rain plays before a transition.
	RainDuration Duration `toml:"rain_duration" json:"rain_duration"`

	ShowWelcome bool `toml:"show_welcome" json:"show_welcome"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

// D wraps d.
func D(d time.Duration) Duration { return Duration{d} }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Terminal: TerminalConfig{
			HistoryLimit:   session.DefaultHistoryLimit,
			HistoryBackend: "file",
			TypingEffect:   true,
		},
		Assistant: AssistantConfig{
			Threshold: assistant.AcceptThreshold,
			ChatDelay: D(assistant.DefaultReplyDelay),
		},
		Content: ContentConfig{
			CacheTTL: D(0),
			Watch:    true,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			AllowedOrigins:  []string{"http://localhost:5173"},
			RateLimit:       10,
			RateBurst:       20,
			SessionTTL:      D(30 * time.Minute),
			ShutdownTimeout: D(10 * time.Second),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		UI: UIConfig{
			Theme:        "auto",
			RainDuration: D(5 * time.Second),
			ShowWelcome:  true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the folio configuration directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv("FOLIO_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".folio"), nil
}

// ConfigPath returns the path of config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryDir is where the file backend stores history.
func (c *Config) HistoryDir() string {
	return filepath.Join(c.Terminal.DataDir, "history")
}

// DatabasePath is the sqlite backend's database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Terminal.DataDir, "folio.db")
}

// LogPath is the log file, defaulting into the data dir.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.Terminal.DataDir, "folio.log")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads .env, then config.toml if it exists, then FOLIO_* overrides,
// then fills defaults and validates.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}
	return finish(cfg)
}

// LoadFromPath reads the TOML file at path with the same overrides as Load.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path over cfg. Keys the file omits keep cfg's values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv loads path into the environment without overriding variables
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// SaveTOML writes cfg to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# folio configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every validation failure.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns ValidateErrors on failure.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Terminal.HistoryLimit < 1 || c.Terminal.HistoryLimit > session.DefaultHistoryLimit {
		add("terminal.history_limit", "must be between 1 and %d, got %d", session.DefaultHistoryLimit, c.Terminal.HistoryLimit)
	}
	switch c.Terminal.HistoryBackend {
	case "file", "sqlite", "memory":
	default:
		add("terminal.history_backend", "invalid backend '%s', must be one of: file, sqlite, memory", c.Terminal.HistoryBackend)
	}

	if c.Assistant.Threshold != assistant.AcceptThreshold {
		add("assistant.threshold", "is fixed at %.1f", assistant.AcceptThreshold)
	}
	if c.Assistant.ChatDelay.Duration < 0 || c.Assistant.ChatDelay.Duration > 10*time.Second {
		add("assistant.chat_delay", "must be between 0s and 10s, got %s", c.Assistant.ChatDelay)
	}

	if c.Content.CacheTTL.Duration < 0 {
		add("content.cache_ttl", "must not be negative")
	}
	if c.Content.ProfilePath != "" {
		if _, err := os.Stat(c.Content.ProfilePath); err != nil {
			add("content.profile_path", "cannot read profile: %v", err)
		}
	}
	if c.Content.BlogDir != "" {
		if info, err := os.Stat(c.Content.BlogDir); err != nil || !info.IsDir() {
			add("content.blog_dir", "'%s' is not a directory", c.Content.BlogDir)
		}
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		add("server.addr", "must not be empty")
	}
	if c.Server.RateLimit <= 0 {
		add("server.rate_limit", "must be positive, got %v", c.Server.RateLimit)
	}
	if c.Server.RateBurst < 1 {
		add("server.rate_burst", "must be at least 1, got %d", c.Server.RateBurst)
	}
	if c.Server.SessionTTL.Duration < time.Minute {
		add("server.session_ttl", "must be at least 1m, got %s", c.Server.SessionTTL)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}
	if c.UI.RainDuration.Duration < 0 || c.UI.RainDuration.Duration > 10*time.Second {
		add("ui.rain_duration", "must be between 0s and 10s, got %s", c.UI.RainDuration)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Terminal.HistoryLimit == 0 {
		c.Terminal.HistoryLimit = defaults.Terminal.HistoryLimit
	}
	if c.Terminal.HistoryBackend == "" {
		c.Terminal.HistoryBackend = defaults.Terminal.HistoryBackend
	}
	if c.Terminal.DataDir == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Terminal.DataDir = dir
		}
	}
	if c.Assistant.Threshold == 0 {
		c.Assistant.Threshold = defaults.Assistant.Threshold
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = defaults.Server.RateLimit
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = defaults.Server.RateBurst
	}
	if c.Server.SessionTTL.Duration == 0 {
		c.Server.SessionTTL = defaults.Server.SessionTTL
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = defaults.Logging.MaxAgeDays
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies FOLIO_* environment variables:
//
//	FOLIO_HISTORY_LIMIT     terminal.history_limit
//	FOLIO_HISTORY_BACKEND   terminal.history_backend
//	FOLIO_DATA_DIR          terminal.data_dir
//	FOLIO_CHAT_DELAY        assistant.chat_delay
//	FOLIO_PROFILE_PATH      content.profile_path
//	FOLIO_BLOG_DIR          content.blog_dir
//	FOLIO_ADDR              server.addr
//	FOLIO_ALLOWED_ORIGINS   server.allowed_origins (comma separated)
//	FOLIO_LOG_LEVEL         logging.level
//	FOLIO_LOG_FILE          logging.file
//	FOLIO_THEME             ui.theme
//
// Unparseable values are ignored and surface later through Validate.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FOLIO_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Terminal.HistoryLimit = n
		}
	}
	if v := os.Getenv("FOLIO_HISTORY_BACKEND"); v != "" {
		c.Terminal.HistoryBackend = strings.ToLower(v)
	}
	if v := os.Getenv("FOLIO_DATA_DIR"); v != "" {
		c.Terminal.DataDir = v
	}
	if v := os.Getenv("FOLIO_CHAT_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Assistant.ChatDelay = D(d)
		}
	}
	if v := os.Getenv("FOLIO_PROFILE_PATH"); v != "" {
		c.Content.ProfilePath = v
	}
	if v := os.Getenv("FOLIO_BLOG_DIR"); v != "" {
		c.Content.BlogDir = v
	}
	if v := os.Getenv("FOLIO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("FOLIO_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FOLIO_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("FOLIO_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by dotted key, e.g. "server.addr".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by dotted key. String values are converted to the
// field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct || field.Type() == durationType {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

var durationType = reflect.TypeOf(Duration{})

// normalizeFieldName turns snake_case or kebab-case into a Go field name.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(part[:1]))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		if field.Type() == durationType {
			var d Duration
			if err := d.UnmarshalText([]byte(strVal)); err != nil {
				return err
			}
			field.Set(reflect.ValueOf(d))
			return nil
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Float64:
			f, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(f)
			return nil
		case reflect.Bool:
			b, err := strconv.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %w", err)
			}
			field.SetBool(b)
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, s := range strings.Split(strVal, ",") {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Server.AllowedOrigins != nil {
		clone.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	}
	return &clone
}

// String renders the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
