package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// envPrefix namespaces biaslens environment variables.
	envPrefix = "BIASLENS_"

	// maxConfigFileSize bounds config files to keep parsing cheap.
	maxConfigFileSize = 1024 * 1024
)

// Load builds configuration from defaults, an optional YAML file, and
// environment variables, in increasing precedence:
//
//  1. Hardcoded defaults (Default())
//  2. YAML config file, when configPath is non-empty and exists
//  3. BIASLENS_-prefixed environment variables
//
// Environment variables map underscore-separated segments onto config
// keys, e.g.
//
//	BIASLENS_MONITOR_ALERT_THRESHOLD -> monitor.alert_threshold
//	BIASLENS_LOGGING_LEVEL           -> logging.level
//
// The loaded configuration is validated before being returned.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			content, err := readConfigFile(configPath)
			if err != nil {
				return nil, err
			}
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envTransform maps BIASLENS_SECTION_FIELD_NAME to section.field_name.
// The first underscore separates the section; the rest of the name keeps
// its underscores, matching the koanf field tags.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// readConfigFile reads the file through an open descriptor so the size
// check and the read see the same file.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
