package formatter

import (
	"fmt"
	"slices"

	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
)

// pendingSet holds the renderable items not yet emitted, in collection order.
type pendingSet struct {
	order []ItemID
	live  map[ItemID]bool
}

func newPendingSet(ids []ItemID) *pendingSet {
	p := &pendingSet{order: ids, live: make(map[ItemID]bool, len(ids))}
	for _, id := range ids {
		p.live[id] = true
	}
	return p
}

func (p *pendingSet) has(id ItemID) bool {
	return p.live[id]
}

func (p *pendingSet) remove(id ItemID) {
	delete(p.live, id)
}

func (p *pendingSet) len() int {
	return len(p.live)
}

// snapshot returns the still pending items in collection order.
func (p *pendingSet) snapshot() []ItemID {
	ids := make([]ItemID, 0, len(p.live))
	for _, id := range p.order {
		if p.live[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// grouper turns a populated tree into units
type grouper struct {
	tree        *Tree
	pending     *pendingSet
	minSiblings int
	maxDepth    int
	units       []Unit
}

// GroupTree produces the units covering every explicit import and leaf of
// the tree exactly once. Items sharing a container with at least minSiblings
// siblings are grouped first; the rest are grouped at most maxDepth levels
// above their branch end, deepest first.
func GroupTree(tree *Tree, minSiblings, maxDepth int) ([]Unit, error) {
	g := &grouper{
		tree:        tree,
		minSiblings: minSiblings,
		maxDepth:    maxDepth,
	}
	g.pending = newPendingSet(tree.renderable(rootContainer, func(ItemID) bool { return true }))

	g.groupBySiblingCount()
	if g.pending.len() > 0 {
		g.groupByDepthFromBranchEnd()
	}
	if n := g.pending.len(); n != 0 {
		return nil, fmt.Errorf("%w: %d items left", errors.ErrUngroupableItemsRemain, n)
	}
	return g.units, nil
}

// groupBySiblingCount emits A\B\{C, D} for containers with enough siblings,
// so they are not rolled up as A\{B\C, B\D} later on. Root level items are
// left to the list merge of the ordering step.
func (g *grouper) groupBySiblingCount() {
	for _, id := range g.pending.snapshot() {
		if !g.pending.has(id) {
			continue
		}
		c := g.tree.items[id].container
		if c == rootContainer {
			continue
		}
		siblings := g.tree.siblings(c)
		if len(siblings) < g.minSiblings {
			continue
		}
		names := make([]string, 0, len(siblings))
		for _, sibling := range siblings {
			names = append(names, g.tree.items[sibling].DisplayName())
			g.pending.remove(sibling)
		}
		g.emit(Group{Namespace: g.tree.Namespace(id, NoItem), Names: names})
	}
}

// groupByDepthFromBranchEnd climbs maxDepth levels from each item and groups
// every pending item below that ancestor which is no deeper than the item.
//
//	  P   C
//	A\B\C\D     with maxDepth 2 groups C\D, G and J\K under A
//	A\E\F\G     but not N\O\P, which is deeper than D
//	A\H\I\J\K
//	A\L\M\N\O\P
func (g *grouper) groupByDepthFromBranchEnd() {
	ids := g.pending.snapshot()
	slices.SortStableFunc(ids, func(a, b ItemID) int {
		return g.tree.Depth(b) - g.tree.Depth(a)
	})
	for _, id := range ids {
		if !g.pending.has(id) {
			continue
		}
		parent := g.tree.Ancestor(id, g.maxDepth)
		if parent == NoItem {
			g.emitSingle(id)
			continue
		}
		depth := g.tree.Depth(id)
		members := g.tree.renderable(g.tree.items[parent].children, func(member ItemID) bool {
			return g.pending.has(member) && g.tree.Depth(member) <= depth
		})
		switch len(members) {
		case 0:
			g.emitSingle(id)
		case 1:
			g.emitSingle(members[0])
		default:
			names := make([]string, 0, len(members))
			for _, member := range members {
				names = append(names, g.tree.QualifiedName(member, true, parent))
				g.pending.remove(member)
			}
			g.emit(Group{Namespace: g.tree.QualifiedName(parent, false, NoItem), Names: names})
		}
	}
}

func (g *grouper) emitSingle(id ItemID) {
	g.pending.remove(id)
	g.emit(Single{Name: g.tree.QualifiedName(id, true, NoItem)})
}

func (g *grouper) emit(u Unit) {
	g.units = append(g.units, u)
}
