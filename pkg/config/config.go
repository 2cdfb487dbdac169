package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
	"github.com/siyuan-infoblox/php-use-group/pkg/formatter"
	"github.com/siyuan-infoblox/php-use-group/pkg/utils"
)

// MaxLineLengthEnv overrides the max line length from config files
const MaxLineLengthEnv = "MAX_LINE_LENGTH"

// FileNames are the config files searched for, nearest directory first
var FileNames = []string{".pug.yaml", ".pug.yml", ".pug.toml"}

type Config struct {
	MaxLineLength        int `yaml:"max_line_length" toml:"max_line_length"`
	MinSiblingGroupCount int `yaml:"min_sibling_group_count" toml:"min_sibling_group_count"`
	MaxGroupDepth        int `yaml:"max_group_depth" toml:"max_group_depth"`
}

func Default() Config {
	return Config{
		MaxLineLength:        120,
		MinSiblingGroupCount: 2,
		MaxGroupDepth:        2,
	}
}

// Discover returns the nearest config file from dir upwards, or an empty string
func Discover(dir string) string {
	return utils.FindUpward(dir, FileNames...)
}

// Load reads a YAML or TOML config file over the defaults. Keys missing from
// the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToLoadConfig, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document leaves the defaults untouched
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return cfg, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToParseConfig, path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToParseConfig, path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("%s %s: unknown key %q", errors.ErrMsgFailedToParseConfig, path, undecoded[0].String())
		}
	default:
		return cfg, fmt.Errorf("%s: %s", errors.ErrMsgUnsupportedConfig, path)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from the environment, looked up through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	value, ok := lookup(MaxLineLengthEnv)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s %s: %w", errors.ErrMsgInvalidEnvValue, MaxLineLengthEnv, err)
	}
	c.MaxLineLength = n
	return nil
}

// Validate checks every setting is at least 1
func (c Config) Validate() error {
	if c.MaxLineLength < 1 {
		return fmt.Errorf("%w: max line length must be at least 1, got %d", errors.ErrInvalidConfig, c.MaxLineLength)
	}
	return c.Formatter().Validate()
}

// Formatter converts the settings for the formatter
func (c Config) Formatter() formatter.FormatterConfig {
	return formatter.FormatterConfig{
		MaxLineLength:        c.MaxLineLength,
		MinSiblingGroupCount: c.MinSiblingGroupCount,
		MaxGroupDepth:        c.MaxGroupDepth,
	}
}
