package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
)

// Kind is the kind of symbol a use statement imports. Blocks are rendered in Kind order.
type Kind int

const (
	ValueKind Kind = iota // classes, interfaces, traits, enums and namespaces
	FunctionKind
	ConstKind
)

// Kinds lists every statement kind in rendering order.
var Kinds = []Kind{ValueKind, FunctionKind, ConstKind}

// Keyword returns the prefix rendered after "use " for the kind.
func (k Kind) Keyword() string {
	switch k {
	case FunctionKind:
		return "function "
	case ConstKind:
		return "const "
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case FunctionKind:
		return "function"
	case ConstKind:
		return "const"
	default:
		return "value"
	}
}

// Path is one qualified name taken from a statement.
type Path struct {
	Segments []string
	Alias    string
}

// String renders the path the way it appears in a statement.
func (p Path) String() string {
	s := strings.Join(p.Segments, Separator)
	if p.Alias != "" {
		s += " as " + p.Alias
	}
	return s
}

// Tokenizer splits raw content into statements without their terminators.
type Tokenizer func(content string) ([]string, error)

var (
	statementPrefix = regexp.MustCompile(`^use\s+(?:(const|function)\s+)?`)
	aliasClause     = regexp.MustCompile(`(?i)\s+as\s+`)
	lineBreaks      = strings.NewReplacer("\r\n", "", "\r", "", "\n", "", "\t", "")
)

// SplitStatements is the default Tokenizer. Text after the last semicolon is ignored.
func SplitStatements(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.ErrEmptyInput
	}
	if !strings.Contains(content, ";") {
		return nil, errors.ErrNoStatementsFound
	}
	parts := strings.Split(content, ";")
	return parts[:len(parts)-1], nil
}

// ParseStatement classifies a raw statement and expands it into its paths.
func ParseStatement(raw string) (Kind, []Path, error) {
	statement := strings.TrimSpace(raw)
	match := statementPrefix.FindStringSubmatch(statement)
	if match == nil {
		return ValueKind, nil, fmt.Errorf("%w: %q", errors.ErrInvalidStatementPrefix, statement)
	}
	kind := ValueKind
	switch match[1] {
	case "function":
		kind = FunctionKind
	case "const":
		kind = ConstKind
	}

	body := strings.TrimSpace(lineBreaks.Replace(statement[len(match[0]):]))
	var (
		entries []string
		prefix  string
	)
	if open := strings.Index(body, "{"); open >= 0 {
		if !strings.HasSuffix(body, "}") || strings.Count(body, "{") != 1 {
			return kind, nil, fmt.Errorf("%w: %q", errors.ErrMalformedGroupSyntax, body)
		}
		prefix = strings.TrimSpace(body[:open])
		if !strings.HasSuffix(prefix, Separator) || len(prefix) == len(Separator) {
			return kind, nil, fmt.Errorf("%w: %q", errors.ErrMalformedGroupSyntax, body)
		}
		entries = strings.Split(body[open+1:len(body)-1], ",")
		// trailing comma inside braces
		if len(entries) > 1 && strings.TrimSpace(entries[len(entries)-1]) == "" {
			entries = entries[:len(entries)-1]
		}
	} else {
		entries = strings.Split(body, ",")
	}

	paths := make([]Path, 0, len(entries))
	for _, entry := range entries {
		path, err := parsePath(prefix + strings.TrimSpace(entry))
		if err != nil {
			return kind, nil, fmt.Errorf("%w: %q", err, body)
		}
		paths = append(paths, path)
	}
	return kind, paths, nil
}

// parsePath splits a qualified name, with an optional alias on its last segment.
func parsePath(name string) (Path, error) {
	var alias string
	if pieces := aliasClause.Split(name, 2); len(pieces) == 2 {
		name, alias = pieces[0], strings.TrimSpace(pieces[1])
	}
	segments := strings.Split(strings.TrimPrefix(strings.TrimSpace(name), Separator), Separator)
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
		if segments[i] == "" {
			return Path{}, errors.ErrInvalidName
		}
	}
	return Path{Segments: segments, Alias: alias}, nil
}

// Ingest inserts every path of the statements into the tree of its kind.
func Ingest(trees map[Kind]*Tree, statements []string) error {
	for i, statement := range statements {
		kind, paths, err := ParseStatement(statement)
		if err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
		tree, ok := trees[kind]
		if !ok {
			tree = NewTree()
			trees[kind] = tree
		}
		for _, path := range paths {
			tree.Insert(path.Segments, path.Alias)
		}
	}
	return nil
}
