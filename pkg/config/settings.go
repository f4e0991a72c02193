package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvCandidateID = "MEGAVERSE_CANDIDATE_ID"
	EnvBaseURL     = "MEGAVERSE_BASE_URL"
	EnvRedisAddr   = "MEGAVERSE_REDIS_ADDR"
)

// MaxAttemptsLimit bounds max_attempts; the backoff doubles on every attempt.
const MaxAttemptsLimit = 10

// DefaultBaseURL is the public challenge API.
const DefaultBaseURL = "https://challenge.crossmint.io/api/"

var ErrMissingCandidate = errors.New("candidate id is required")

// Settings are the runtime parameters of a build.
type Settings struct {
	BaseURL     string        `mapstructure:"base_url"`
	CandidateID string        `mapstructure:"candidate_id"`
	Delay       time.Duration `mapstructure:"delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	LockTTL     time.Duration `mapstructure:"lock_ttl"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:     DefaultBaseURL,
		Delay:       750 * time.Millisecond,
		Timeout:     10 * time.Second,
		MaxAttempts: 3,
		BaseDelay:   2500 * time.Millisecond,
		LockTTL:     30 * time.Minute,
	}
}

// LoadSettings layers defaults, the optional settings file and the environment.
// An empty path skips the file. Durations may be written as "750ms" or "2.5s".
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		raw, err := readRaw(path)
		if err != nil {
			return s, err
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &s,
		})
		if err != nil {
			return s, err
		}
		if err := dec.Decode(raw); err != nil {
			return s, fmt.Errorf("invalid settings in %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvCandidateID); v != "" {
		s.CandidateID = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		s.RedisAddr = v
	}

	return s, nil
}

func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse settings json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse settings yaml: %w", err)
		}
	}
	return raw, nil
}

// Validate normalizes the base URL and checks required fields.
// dryRun skips the candidate requirement since no remote call is made.
func (s *Settings) Validate(dryRun bool) error {
	if s.BaseURL == "" {
		return errors.New("base url is required")
	}
	if !strings.HasSuffix(s.BaseURL, "/") {
		s.BaseURL += "/"
	}
	if s.CandidateID == "" && !dryRun {
		return fmt.Errorf("%w (set --candidate-id or %s)", ErrMissingCandidate, EnvCandidateID)
	}
	if s.MaxAttempts < 1 || s.MaxAttempts > MaxAttemptsLimit {
		return fmt.Errorf("max attempts must be between 1 and %d, got %d", MaxAttemptsLimit, s.MaxAttempts)
	}
	if s.Delay < 0 || s.BaseDelay < 0 {
		return errors.New("delays cannot be negative")
	}
	return nil
}
