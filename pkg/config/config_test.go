package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
	"github.com/siyuan-infoblox/php-use-group/pkg/formatter"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    Config
	}{
		{
			name:    "yaml",
			file:    "full.yaml",
			content: "max_line_length: 80\nmin_sibling_group_count: 3\nmax_group_depth: 1\n",
			want:    Config{MaxLineLength: 80, MinSiblingGroupCount: 3, MaxGroupDepth: 1},
		},
		{
			name:    "yml keeps unset defaults",
			file:    "partial.yml",
			content: "max_line_length: 100\n",
			want:    Config{MaxLineLength: 100, MinSiblingGroupCount: 2, MaxGroupDepth: 2},
		},
		{
			name:    "empty yaml",
			file:    "empty.yaml",
			content: "",
			want:    Default(),
		},
		{
			name:    "toml",
			file:    "full.toml",
			content: "max_line_length = 72\nmax_group_depth = 3\n",
			want:    Config{MaxLineLength: 72, MinSiblingGroupCount: 2, MaxGroupDepth: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := Load(writeFile(t, dir, tt.file, tt.content))
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func TestLoad_errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{"unknown yaml key", "bad.yaml", "line_length: 80\n", "failed to parse config file"},
		{"invalid yaml", "broken.yaml", "max_line_length: [\n", "failed to parse config file"},
		{"unknown toml key", "bad.toml", "line_length = 80\n", "unknown key"},
		{"invalid toml", "broken.toml", "max_line_length = \n", "failed to parse config file"},
		{"unsupported extension", "config.json", "{}", "unsupported config file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			req.ErrorContains(err, tt.wantMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		req := require.New(t)
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		req.ErrorIs(err, os.ErrNotExist)
	})
}

func TestDiscover(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	nested := filepath.Join(root, "app", "Models")
	req.NoError(os.MkdirAll(nested, 0755))

	path := writeFile(t, root, ".pug.toml", "max_line_length = 90\n")
	req.Equal(path, Discover(nested))

	cfg, err := Load(Discover(nested))
	req.NoError(err)
	req.Equal(90, cfg.MaxLineLength)
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		}
	}

	t.Run("unset keeps value", func(t *testing.T) {
		req := require.New(t)
		cfg := Default()
		req.NoError(cfg.ApplyEnv(env(nil)))
		req.Equal(120, cfg.MaxLineLength)
	})

	t.Run("overrides max line length", func(t *testing.T) {
		req := require.New(t)
		cfg := Default()
		req.NoError(cfg.ApplyEnv(env(map[string]string{MaxLineLengthEnv: " 80 "})))
		req.Equal(80, cfg.MaxLineLength)
	})

	t.Run("rejects non numbers", func(t *testing.T) {
		req := require.New(t)
		cfg := Default()
		err := cfg.ApplyEnv(env(map[string]string{MaxLineLengthEnv: "wide"}))
		req.ErrorContains(err, MaxLineLengthEnv)
		req.Equal(120, cfg.MaxLineLength)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Default(), false},
		{"zero line length", Config{MaxLineLength: 0, MinSiblingGroupCount: 2, MaxGroupDepth: 2}, true},
		{"zero siblings", Config{MaxLineLength: 80, MinSiblingGroupCount: 0, MaxGroupDepth: 2}, true},
		{"negative depth", Config{MaxLineLength: 80, MinSiblingGroupCount: 2, MaxGroupDepth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := tt.cfg.Validate()
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrInvalidConfig)
				return
			}
			req.NoError(err)
		})
	}
}

func TestConfig_Formatter(t *testing.T) {
	req := require.New(t)
	got := Config{MaxLineLength: 60, MinSiblingGroupCount: 4, MaxGroupDepth: 3}.Formatter()
	req.Equal(formatter.FormatterConfig{MaxLineLength: 60, MinSiblingGroupCount: 4, MaxGroupDepth: 3}, got)
}
