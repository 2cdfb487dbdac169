package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siyuan-infoblox/php-use-group/pkg/config"
	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
	"github.com/siyuan-infoblox/php-use-group/pkg/formatter"
	"github.com/siyuan-infoblox/php-use-group/pkg/utils"
	"github.com/siyuan-infoblox/php-use-group/pkg/version"
)

const (
	UseDescription   = "pug [flags] [PATH]"
	ShortDescription = "PHP use grouper - A tool to group and sort PHP use statements"
	LongDescription  = `pug is a command-line tool that groups and sorts PHP use statements.

It reads a block of use statements and renders them in a canonical order:
1. Class, interface, trait and namespace imports
2. Function imports (use function)
3. Constant imports (use const)

Names sharing a namespace are grouped with bracket syntax (use A\{B, C};),
never more than two levels above the end of a branch, and lists are wrapped
at the max line length.

PATH is a file containing only use statements. Without PATH, or with "-",
input is read from stdin. If the input cannot be formatted it is written back
unchanged and pug exits with a non-zero status.

Settings are read from .pug.yaml, .pug.yml or .pug.toml in the current or a
parent directory, then from the MAX_LINE_LENGTH environment variable, then
from flags.`
)

type options struct {
	maxLineLength        int
	minSiblingGroupCount int
	maxGroupDepth        int
	configPath           string
	inPlace              bool
	verbose              bool
	showVersion          bool

	logger *zap.Logger
}

// NewRootCommand creates the pug command
func NewRootCommand() *cobra.Command {
	opts := &options{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:           UseDescription,
		Short:         ShortDescription,
		Long:          LongDescription,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return reportError(cmd, err)
	})

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.maxLineLength, "max-line-length", "l", defaults.MaxLineLength, "Maximum rendered line length")
	flags.IntVar(&opts.minSiblingGroupCount, "min-sibling-group-count", defaults.MinSiblingGroupCount, "Siblings needed in one namespace to group them together")
	flags.IntVar(&opts.maxGroupDepth, "max-group-depth", defaults.MaxGroupDepth, "Levels above the end of a branch a group may start at")
	flags.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml or .toml), discovered from the working directory if empty")
	flags.BoolVar(&opts.inPlace, "in-place", false, "Modify the file in place instead of printing to stdout")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log debug information to stderr")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	return rootCmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return reportError(cmd, err)
	}
	return nil
}

// newLogger writes console encoded logs to w, at debug level when verbose
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

// loadConfig layers defaults, config file, environment and explicitly set flags
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	logger := opts.logger
	path := opts.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToGetWorkingDir, err)
		}
		path = config.Discover(wd)
	}

	cfg := config.Default()
	if path == "" {
		logger.Debug(errors.InfoMsgNoConfigFile)
	} else {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
		logger.Debug(errors.InfoMsgConfigFile, zap.String("path", path))
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-line-length") {
		cfg.MaxLineLength = opts.maxLineLength
	}
	if flags.Changed("min-sibling-group-count") {
		cfg.MinSiblingGroupCount = opts.minSiblingGroupCount
	}
	if flags.Changed("max-group-depth") {
		cfg.MaxGroupDepth = opts.maxGroupDepth
	}
	logger.Debug("settings",
		zap.Int("maxLineLength", cfg.MaxLineLength),
		zap.Int("minSiblingGroupCount", cfg.MinSiblingGroupCount),
		zap.Int("maxGroupDepth", cfg.MaxGroupDepth))
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	// Handle version flag
	if opts.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return nil
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	if opts.inPlace && utils.IsStdin(path) {
		return reportError(cmd, stderrors.New(errors.ErrMsgInPlaceRequiresFile))
	}

	data, err := utils.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return reportError(cmd, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadInput, err))
	}

	// from here on a failed run must leave the content as it was
	fail := func(err error) error {
		if !opts.inPlace {
			if _, werr := cmd.OutOrStdout().Write(data); werr != nil {
				opts.logger.Warn("failed to echo input", zap.Error(werr))
			}
		}
		return reportError(cmd, err)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return fail(err)
	}

	f := formatter.New(cfg.Formatter(), formatter.WithLogger(opts.logger))
	out, err := f.Format(string(data))
	if err != nil {
		// engine defects are already logged at error level by the formatter
		if !stderrors.Is(err, errors.ErrUngroupableItemsRemain) {
			opts.logger.Debug(errors.InfoMsgFormatFailed, zap.Error(err))
		}
		return fail(err)
	}

	if opts.inPlace {
		if err := utils.WriteFile(path, []byte(out)); err != nil {
			return reportError(cmd, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err))
		}
		return nil
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// reportError writes err to the error stream in the ">>> message" form and returns it
func reportError(cmd *cobra.Command, err error) error {
	color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), ">>> %s\n", err)
	return err
}

func Execute(moduleVersion string) error {
	version.Set(moduleVersion)
	return NewRootCommand().Execute()
}
