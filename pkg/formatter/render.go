package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

const groupIndent = "    "

// Order sorts units by sort key, singles before groups on equal keys, then
// merges each run of adjacent short singles into one List.
func Order(units []Unit) []Unit {
	sorted := slices.Clone(units)
	slices.SortStableFunc(sorted, func(a, b Unit) int {
		if c := strings.Compare(a.SortKey(), b.SortKey()); c != 0 {
			return c
		}
		return a.Priority() - b.Priority()
	})

	var (
		ordered []Unit
		shorts  []string
	)
	flush := func() {
		if len(shorts) > 0 {
			ordered = append(ordered, List{Names: shorts})
			shorts = nil
		}
	}
	for _, u := range sorted {
		if s, ok := u.(Single); ok && isShort(s.Name) {
			shorts = append(shorts, s.Name)
			continue
		}
		flush()
		ordered = append(ordered, u)
	}
	flush()
	return ordered
}

// isShort reports whether name has at most two segments.
func isShort(name string) bool {
	return strings.Count(name, Separator) <= 1
}

// Render serializes ordered units into one block of use statements without a
// trailing newline. A maxLineLength of zero or less disables wrapping.
func Render(units []Unit, kind Kind, maxLineLength int) string {
	lines := make([]string, 0, len(units))
	for _, u := range units {
		switch u := u.(type) {
		case Single:
			lines = append(lines, renderSingle(u, kind))
		case List:
			lines = append(lines, renderList(u, kind, maxLineLength))
		case Group:
			lines = append(lines, renderGroup(u, kind, maxLineLength))
		default:
			panic(fmt.Sprintf("formatter: unknown unit %T", u))
		}
	}
	return strings.Join(lines, "\n")
}

func renderSingle(s Single, kind Kind) string {
	return "use " + kind.Keyword() + s.Name + ";"
}

// renderList wraps names onto continuation lines aligned under the first
// name. The first name always stays on the opening line.
func renderList(l List, kind Kind, maxLineLength int) string {
	prefix := "use " + kind.Keyword()
	offset := runewidth.StringWidth(prefix)
	allowed := maxLineLength - offset

	var (
		lines  []string
		line   strings.Builder
		length int
	)
	line.WriteString(prefix)
	for i, name := range l.Names {
		data := name
		width := runewidth.StringWidth(name)
		if i < len(l.Names)-1 {
			data += ", "
			width += 2
		} else {
			width++ // terminator
		}
		if maxLineLength > 0 && length > 0 && length+width > allowed {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
			line.WriteString(strings.Repeat(" ", offset))
			length = 0
		}
		line.WriteString(data)
		length += width
	}
	line.WriteString(";")
	return strings.Join(append(lines, line.String()), "\n")
}

// renderGroup puts one name per line when the single line form is too long.
func renderGroup(g Group, kind Kind, maxLineLength int) string {
	names := slices.Clone(g.Names)
	slices.Sort(names)
	head := "use " + kind.Keyword() + g.Namespace + Separator + "{"

	length := runewidth.StringWidth(head)
	for _, name := range names {
		length += runewidth.StringWidth(name)
	}
	length += (len(names) - 1) * 2 // separators between names
	length += 2                    // closing "};"

	if maxLineLength > 0 && length > maxLineLength {
		return head + "\n" + groupIndent + strings.Join(names, ",\n"+groupIndent) + "\n};"
	}
	return head + strings.Join(names, ", ") + "};"
}
