// Package config loads the client configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"ogsnotify/internal/domain/entity"
)

const (
	defaultPath = "."

	defaultLocalBaseURL      = "http://localhost:8080"
	defaultProductionBaseURL = "https://notify.online-go.com"

	defaultClientTimeout = 15 * time.Second

	defaultRegistrationMaxAttempts  = 3
	defaultRegistrationInitialDelay = 500 * time.Millisecond
	defaultDiagnosticsSettleDelay   = time.Second
	defaultDiagnosticsPollTimeout   = 10 * time.Second

	defaultStorageDirName  = ".ogsnotify"
	defaultStorageFileName = "state.db"
)

// Config is the full client configuration.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// Storage configures the local state store.
	Storage struct {
		// Path to the sqlite state file. Defaults to
		// ~/.ogsnotify/state.db when empty.
		Path string `json:"path" yaml:"path"`
	} `json:"storage" yaml:"storage"`

	// Client configures the HTTP client for the notification backend.
	Client struct {
		Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gt=0"`
	} `json:"client" yaml:"client"`

	// Endpoints maps each server environment to its base URL.
	Endpoints struct {
		Local      string `json:"local" yaml:"local" validate:"required,url"`
		Production string `json:"production" yaml:"production" validate:"required,url"`
	} `json:"endpoints" yaml:"endpoints"`

	// Registration configures the bounded retry policy around register.
	Registration struct {
		MaxAttempts  int           `json:"maxAttempts" yaml:"maxAttempts" validate:"gte=1"`
		InitialDelay time.Duration `json:"initialDelay" yaml:"initialDelay" validate:"gt=0"`
	} `json:"registration" yaml:"registration"`

	// Diagnostics configures the post-check reload behavior.
	Diagnostics struct {
		// SettleDelay is how long to wait before the first re-fetch after
		// a manual check, and between poll attempts.
		SettleDelay time.Duration `json:"settleDelay" yaml:"settleDelay" validate:"gt=0"`
		// PollTimeout bounds the whole poll-until-fresh loop.
		PollTimeout time.Duration `json:"pollTimeout" yaml:"pollTimeout" validate:"gt=0"`
	} `json:"diagnostics" yaml:"diagnostics"`
}

// Log configures the slog handler.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// BaseURL returns the configured base URL for env.
func (c *Config) BaseURL(env entity.ServerEnvironment) string {
	switch env {
	case entity.EnvironmentProduction:
		return c.Endpoints.Production
	default:
		return c.Endpoints.Local
	}
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if found {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: ENDPOINTS_PRODUCTION -> endpoints.production
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the client configuration, applies defaults, and validates it.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validate config failed")
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env.ServiceName == "" {
		cfg.Env.ServiceName = "ogsnotify"
	}
	if cfg.Env.Log.Level == "" {
		cfg.Env.Log.Level = "info"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath()
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = defaultClientTimeout
	}
	if cfg.Endpoints.Local == "" {
		cfg.Endpoints.Local = defaultLocalBaseURL
	}
	if cfg.Endpoints.Production == "" {
		cfg.Endpoints.Production = defaultProductionBaseURL
	}
	if cfg.Registration.MaxAttempts == 0 {
		cfg.Registration.MaxAttempts = defaultRegistrationMaxAttempts
	}
	if cfg.Registration.InitialDelay == 0 {
		cfg.Registration.InitialDelay = defaultRegistrationInitialDelay
	}
	if cfg.Diagnostics.SettleDelay == 0 {
		cfg.Diagnostics.SettleDelay = defaultDiagnosticsSettleDelay
	}
	if cfg.Diagnostics.PollTimeout == 0 {
		cfg.Diagnostics.PollTimeout = defaultDiagnosticsPollTimeout
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultStorageFileName
	}

	return filepath.Join(home, defaultStorageDirName, defaultStorageFileName)
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
