package config

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

var envVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads a YAML configuration file, interpolates ${VAR} references
// from the environment, fills unset fields from defaults, and validates
// the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "reading config file", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(interpolateEnvVars(raw))); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "parsing config file", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "unmarshaling config", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDefaults behaves like Load but returns the validated defaults
// when no file exists at path.
func LoadWithDefaults(path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		return cfg, Validate(cfg)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		return cfg, Validate(cfg)
	}
	return Load(path)
}

// interpolateEnvVars replaces ${VAR} references in the raw YAML with
// environment values. Unset variables are left as-is so validation can
// point at them.
func interpolateEnvVars(raw []byte) []byte {
	return envVarRe.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := strings.TrimSuffix(strings.TrimPrefix(string(match), "${"), "}")
		if value := os.Getenv(name); value != "" {
			return []byte(value)
		}
		return match
	})
}
