package formatter

import (
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
)

type FormatterConfig struct {
	MaxLineLength        int // maximum rendered line width, <= 0 for unbounded
	MinSiblingGroupCount int // siblings needed in one namespace to group them
	MaxGroupDepth        int // levels above a branch end a group may start at
}

// DefaultConfig returns an unbounded line length with the default grouping knobs
func DefaultConfig() FormatterConfig {
	return FormatterConfig{
		MaxLineLength:        0,
		MinSiblingGroupCount: 2,
		MaxGroupDepth:        2,
	}
}

// Validate checks the grouping knobs are at least 1
func (c FormatterConfig) Validate() error {
	if c.MinSiblingGroupCount < 1 {
		return fmt.Errorf("%w: min sibling group count must be at least 1, got %d", errors.ErrInvalidConfig, c.MinSiblingGroupCount)
	}
	if c.MaxGroupDepth < 1 {
		return fmt.Errorf("%w: max group depth must be at least 1, got %d", errors.ErrInvalidConfig, c.MaxGroupDepth)
	}
	return nil
}

// Option customizes a formatter
type Option func(*formatter)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(f *formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTokenizer replaces the statement splitter
func WithTokenizer(tokenize Tokenizer) Option {
	return func(f *formatter) {
		if tokenize != nil {
			f.tokenize = tokenize
		}
	}
}

// formatter handles the use statement grouping logic
type formatter struct {
	config   FormatterConfig
	logger   *zap.Logger
	tokenize Tokenizer
}

// New creates a new formatter with the specified configuration
func New(config FormatterConfig, opts ...Option) *formatter {
	f := &formatter{
		config:   config,
		logger:   zap.NewNop(),
		tokenize: SplitStatements,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *formatter) getMaxLineLength() int {
	return f.config.MaxLineLength
}

func (f *formatter) getMinSiblingGroupCount() int {
	return f.config.MinSiblingGroupCount
}

func (f *formatter) getMaxGroupDepth() int {
	return f.config.MaxGroupDepth
}

// Format parses use statements from content and renders them grouped, one
// block per kind, terminated by a newline. Nothing is returned on error.
func (f *formatter) Format(content string) (string, error) {
	if err := f.config.Validate(); err != nil {
		return "", err
	}
	statements, err := f.tokenize(content)
	if err != nil {
		f.logger.Debug("tokenize failed", zap.Error(err))
		return "", err
	}
	if len(statements) == 0 {
		return "", errors.ErrNoStatementsFound
	}
	f.logger.Debug(errors.InfoMsgParsed, zap.Int("count", len(statements)))

	// a fresh set of trees per call keeps item ids call-local
	trees := make(map[Kind]*Tree, len(Kinds))
	if err := Ingest(trees, statements); err != nil {
		f.logger.Debug("ingest failed", zap.Error(err))
		return "", err
	}

	var blocks []string
	for _, kind := range Kinds {
		tree, ok := trees[kind]
		if !ok || tree.Empty() {
			continue
		}
		units, err := GroupTree(tree, f.getMinSiblingGroupCount(), f.getMaxGroupDepth())
		if err != nil {
			if stderrors.Is(err, errors.ErrUngroupableItemsRemain) {
				f.logger.Error(errors.InfoMsgEngineDefect,
					zap.Stringer("kind", kind),
					zap.Int("items", tree.Len()),
					zap.Error(err))
			}
			return "", fmt.Errorf("%s imports: %w", kind, err)
		}
		f.logger.Debug("grouped",
			zap.Stringer("kind", kind),
			zap.Int("items", tree.Len()),
			zap.Int("units", len(units)))
		blocks = append(blocks, Render(Order(units), kind, f.getMaxLineLength()))
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

// Format formats content with the given configuration
func Format(content string, config FormatterConfig) (string, error) {
	return New(config).Format(content)
}
