package formatter

// Unit is one renderable piece of a block: a Single, a Group or a List.
type Unit interface {
	// SortKey is the fully qualified name of a single, or the namespace of a group.
	SortKey() string
	// Priority breaks ties between units sharing a sort key.
	Priority() int
	unit()
}

// Single is one fully qualified name, rendered as "use A\B\C;".
type Single struct {
	Name string
}

// Group is a namespace with leaf names relative to it, rendered as "use A\{B, C};".
type Group struct {
	Namespace string
	Names     []string
}

// List is a flat run of short unrelated names, rendered as "use A, B\C;".
type List struct {
	Names []string
}

func (s Single) SortKey() string { return s.Name }
func (s Single) Priority() int   { return 1 }
func (Single) unit()             {}

func (g Group) SortKey() string { return g.Namespace }
func (g Group) Priority() int   { return 2 }
func (Group) unit()             {}

func (l List) SortKey() string {
	if len(l.Names) == 0 {
		return ""
	}
	return l.Names[0]
}
func (l List) Priority() int { return 1 }
func (List) unit()           {}
