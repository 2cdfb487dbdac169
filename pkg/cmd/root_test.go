package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/php-use-group/pkg/config"
	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs a fresh root command with an isolated config file and environment
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.MaxLineLengthEnv, "")

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pug.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand_formatsStdin(t *testing.T) {
	req := require.New(t)
	cfg := writeConfig(t, "max_line_length: 120\n")

	stdout, stderr, err := execute(t, "use D;\nuse A\\B;\nuse A\\C;\nuse const X;\n", "--config", cfg)
	req.NoError(err)
	req.Empty(stderr)
	req.Equal("use A\\{B, C};\nuse D;\n\nuse const X;\n", stdout)
}

func TestRootCommand_dashReadsStdin(t *testing.T) {
	req := require.New(t)
	cfg := writeConfig(t, "")

	stdout, _, err := execute(t, "use B; use A;", "--config", cfg, "-")
	req.NoError(err)
	req.Equal("use A, B;\n", stdout)
}

func TestRootCommand_settingsPrecedence(t *testing.T) {
	input := "use function array_chunk, array_column, array_count_values, array_diff;"
	cfg := writeConfig(t, "max_line_length: 50\n")

	t.Run("config file", func(t *testing.T) {
		req := require.New(t)
		stdout, _, err := execute(t, input, "--config", cfg)
		req.NoError(err)
		req.Equal("use function array_chunk, array_column,\n             array_count_values, array_diff;\n", stdout)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		req := require.New(t)
		cmd := NewRootCommand()
		var stdout bytes.Buffer
		t.Setenv(config.MaxLineLengthEnv, "200")
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", cfg})
		req.NoError(cmd.Execute())
		req.Equal(input+"\n", stdout.String())
	})

	t.Run("flag overrides config file", func(t *testing.T) {
		req := require.New(t)
		stdout, _, err := execute(t, input, "--config", cfg, "-l", "200")
		req.NoError(err)
		req.Equal(input+"\n", stdout)
	})

	t.Run("grouping flags", func(t *testing.T) {
		req := require.New(t)
		stdout, _, err := execute(t, "use A\\B\\C; use A\\B\\D; use A\\E\\F;", "--config", cfg, "--min-sibling-group-count", "3")
		req.NoError(err)
		req.Equal("use A\\{B\\C, B\\D, E\\F};\n", stdout)
	})
}

func TestRootCommand_failureEchoesInput(t *testing.T) {
	cfg := writeConfig(t, "")

	tests := []struct {
		name    string
		input   string
		args    []string
		wantMsg string
	}{
		{"missing use keyword", "namespace App;\n", nil, errors.ErrInvalidStatementPrefix.Error()},
		{"no statements", "use A", nil, errors.ErrNoStatementsFound.Error()},
		{"malformed group", "use A\\{B, C;", nil, errors.ErrMalformedGroupSyntax.Error()},
		{"invalid grouping depth", "use A;", []string{"--max-group-depth", "0"}, errors.ErrInvalidConfig.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			args := append([]string{"--config", cfg}, tt.args...)
			stdout, stderr, err := execute(t, tt.input, args...)
			req.Error(err)
			req.Equal(tt.input, stdout, "input is echoed unchanged")
			req.True(strings.HasPrefix(stderr, ">>> "), "stderr = %q", stderr)
			req.Contains(stderr, tt.wantMsg)
		})
	}
}

func TestRootCommand_inPlace(t *testing.T) {
	cfg := writeConfig(t, "")

	t.Run("rewrites file", func(t *testing.T) {
		req := require.New(t)
		path := filepath.Join(t.TempDir(), "uses.php")
		req.NoError(os.WriteFile(path, []byte("use B\\C;\nuse B\\A;\n"), 0644))

		stdout, _, err := execute(t, "", "--config", cfg, "--in-place", path)
		req.NoError(err)
		req.Empty(stdout)

		got, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal("use B\\{A, C};\n", string(got))
	})

	t.Run("leaves file untouched on failure", func(t *testing.T) {
		req := require.New(t)
		path := filepath.Join(t.TempDir(), "uses.php")
		original := "use B\\{A;\n"
		req.NoError(os.WriteFile(path, []byte(original), 0644))

		stdout, stderr, err := execute(t, "", "--config", cfg, "--in-place", path)
		req.Error(err)
		req.Empty(stdout)
		req.Contains(stderr, errors.ErrMalformedGroupSyntax.Error())

		got, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal(original, string(got))
	})

	t.Run("requires a path", func(t *testing.T) {
		req := require.New(t)
		_, stderr, err := execute(t, "use A;", "--config", cfg, "--in-place")
		req.Error(err)
		req.Contains(stderr, errors.ErrMsgInPlaceRequiresFile)
	})
}

func TestRootCommand_readsFile(t *testing.T) {
	req := require.New(t)
	cfg := writeConfig(t, "")
	path := filepath.Join(t.TempDir(), "uses.php")
	req.NoError(os.WriteFile(path, []byte("use Z; use Y;"), 0644))

	stdout, _, err := execute(t, "ignored", "--config", cfg, path)
	req.NoError(err)
	req.Equal("use Y, Z;\n", stdout)

	_, stderr, err := execute(t, "", "--config", cfg, filepath.Dir(path))
	req.Error(err)
	req.Contains(stderr, errors.ErrMsgPathIsDirectory)
}

func TestRootCommand_argumentErrors(t *testing.T) {
	req := require.New(t)

	_, stderr, err := execute(t, "", "a.php", "b.php")
	req.Error(err)
	req.True(strings.HasPrefix(stderr, ">>> "))

	_, stderr, err = execute(t, "", "--no-such-flag")
	req.Error(err)
	req.Contains(stderr, "no-such-flag")
}

func TestRootCommand_version(t *testing.T) {
	req := require.New(t)
	stdout, _, err := execute(t, "", "--version")
	req.NoError(err)
	req.True(strings.HasPrefix(stdout, "pug version "))
}

func TestRootCommand_verboseLogs(t *testing.T) {
	req := require.New(t)
	cfg := writeConfig(t, "")
	_, stderr, err := execute(t, "use A;", "--config", cfg, "--verbose")
	req.NoError(err)
	req.Contains(stderr, "using config file")
	req.Contains(stderr, "grouped")
}
