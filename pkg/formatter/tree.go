package formatter

import "strings"

// Separator delimits the segments of a qualified name.
const Separator = `\`

// ItemID identifies an Item within its Tree. IDs start at 0 for every tree.
type ItemID int

// NoItem is returned where no item exists, e.g. above the root level.
const NoItem ItemID = -1

// Item is one segment of a qualified name
type Item struct {
	ID       ItemID
	Name     string
	Explicit bool   // this exact path was named by a statement
	Alias    string // empty if no alias

	container int // owning container
	children  int // child container, -1 if none
	depth     int
}

// DisplayName returns the name with its alias clause, if any.
func (i Item) DisplayName() string {
	if i.Alias == "" {
		return i.Name
	}
	return i.Name + " as " + i.Alias
}

// Container is one level of the hierarchy, holding items in insertion order.
type Container struct {
	owner ItemID // NoItem for the root container
	items []ItemID
	index map[string]ItemID
	depth int
}

// Tree is an arena of items and containers. Items refer to their parent by
// container index, never by pointer.
type Tree struct {
	items      []Item
	containers []Container
	reach      []int // memoized distance to deepest leaf, -1 when unknown
}

const rootContainer = 0

// NewTree creates a tree holding only the empty root container.
func NewTree() *Tree {
	t := &Tree{}
	t.newContainer(NoItem)
	return t
}

func (t *Tree) newContainer(owner ItemID) int {
	depth := 0
	if owner != NoItem {
		depth = t.items[owner].depth
	}
	t.containers = append(t.containers, Container{
		owner: owner,
		index: make(map[string]ItemID),
		depth: depth,
	})
	return len(t.containers) - 1
}

// findOrCreate returns the item called name in container c, creating it when missing.
func (t *Tree) findOrCreate(c int, name string) ItemID {
	if id, ok := t.containers[c].index[name]; ok {
		return id
	}
	id := ItemID(len(t.items))
	t.items = append(t.items, Item{
		ID:        id,
		Name:      name,
		container: c,
		children:  -1,
		depth:     t.containers[c].depth + 1,
	})
	t.containers[c].items = append(t.containers[c].items, id)
	t.containers[c].index[name] = id
	return id
}

// childContainer returns the container holding id's descendants, creating it lazily.
func (t *Tree) childContainer(id ItemID) int {
	if t.items[id].children < 0 {
		c := t.newContainer(id)
		t.items[id].children = c
	}
	return t.items[id].children
}

// Insert adds the path given by segments and marks its final segment as an
// explicit import. An empty alias leaves any existing alias in place.
func (t *Tree) Insert(segments []string, alias string) ItemID {
	t.reach = nil
	c := rootContainer
	for _, segment := range segments[:len(segments)-1] {
		c = t.childContainer(t.findOrCreate(c, segment))
	}
	id := t.findOrCreate(c, segments[len(segments)-1])
	t.items[id].Explicit = true
	if alias != "" {
		t.items[id].Alias = alias
	}
	return id
}

// Len returns the number of items in the tree.
func (t *Tree) Len() int {
	return len(t.items)
}

// Empty reports whether nothing has been inserted.
func (t *Tree) Empty() bool {
	return len(t.items) == 0
}

// Item returns a copy of the item with the given id.
func (t *Tree) Item(id ItemID) Item {
	return t.items[id]
}

// Depth returns the distance of id from the root; root level items have depth 1.
func (t *Tree) Depth(id ItemID) int {
	return t.items[id].depth
}

// IsLeaf reports whether id has no descendants.
func (t *Tree) IsLeaf(id ItemID) bool {
	c := t.items[id].children
	return c < 0 || len(t.containers[c].items) == 0
}

// Parent returns the item owning id's container, or NoItem at the root level.
func (t *Tree) Parent(id ItemID) ItemID {
	return t.containers[t.items[id].container].owner
}

// Ancestor walks n levels up from id. It returns NoItem when id is too shallow.
func (t *Tree) Ancestor(id ItemID, n int) ItemID {
	for ; n > 0 && id != NoItem; n-- {
		id = t.Parent(id)
	}
	return id
}

// Reach returns the number of levels between id and the deepest leaf below it.
func (t *Tree) Reach(id ItemID) int {
	if t.reach == nil {
		t.reach = make([]int, len(t.items))
		for i := range t.reach {
			t.reach[i] = -1
		}
	}
	if t.reach[id] < 0 {
		t.reach[id] = 0
		if !t.IsLeaf(id) {
			t.reach[id] = t.containerReach(t.items[id].children)
		}
	}
	return t.reach[id]
}

func (t *Tree) containerReach(c int) int {
	deepest := 0
	for _, id := range t.containers[c].items {
		deepest = max(deepest, t.Reach(id))
	}
	return deepest + 1
}

// Namespace joins the names of id's ancestors, stopping below until
// (exclusive). Pass NoItem to build the full namespace.
func (t *Tree) Namespace(id, until ItemID) string {
	var parts []string
	for p := t.Parent(id); p != NoItem && p != until; p = t.Parent(p) {
		parts = append(parts, t.items[p].Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, Separator)
}

// QualifiedName returns the name of id prefixed by its namespace relative to until.
func (t *Tree) QualifiedName(id ItemID, withAlias bool, until ItemID) string {
	name := t.items[id].Name
	if withAlias {
		name = t.items[id].DisplayName()
	}
	if ns := t.Namespace(id, until); ns != "" {
		return ns + Separator + name
	}
	return name
}

// siblings returns the items of container c which are explicit imports or leaves.
func (t *Tree) siblings(c int) []ItemID {
	var siblings []ItemID
	for _, id := range t.containers[c].items {
		if t.items[id].Explicit || t.IsLeaf(id) {
			siblings = append(siblings, id)
		}
	}
	return siblings
}

// renderable collects, depth first in insertion order, every item below
// container c that is an explicit import or a leaf and passes keep.
func (t *Tree) renderable(c int, keep func(ItemID) bool) []ItemID {
	var ids []ItemID
	for _, id := range t.containers[c].items {
		item := t.items[id]
		if (item.Explicit || t.IsLeaf(id)) && keep(id) {
			ids = append(ids, id)
		}
		if t.Reach(id) > 0 {
			ids = append(ids, t.renderable(item.children, keep)...)
		}
	}
	return ids
}
