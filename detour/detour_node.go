package detour

import (
	"cmp"
	"slices"
	"sort"

	"navpath/common"
)

const (
	DT_NODE_OPEN   = 0x01
	DT_NODE_CLOSED = 0x02
)

// SearchNode is an entry of the open list. Identity, not value, tells two
// entries apart, so pointer types are the natural fit.
type SearchNode interface {
	comparable
	// EstimatedCombinedWeight is the cost so far plus the heuristic estimate
	// to the goal. It must not change while the node is in a list.
	EstimatedCombinedWeight() float64
}

type DtNode struct {
	Pos    common.Vec3 ///< Position of the node.
	Cost   float64     ///< Cost up to the node.
	Total  float64     ///< Cost up to the node plus heuristic.
	Parent *DtNode     ///< Parent node, nil for the start node.
	Flags  uint32      ///< Node flags. A combination of DT_NODE_OPEN and DT_NODE_CLOSED.
	Id     DtTriRef    ///< Triangle ref the node corresponds to.
}

func (node *DtNode) EstimatedCombinedWeight() float64 { return node.Total }

// DtNodePool hands out at most one node per triangle for a single search.
type DtNodePool struct {
	m_nodes    map[DtTriRef]*DtNode
	m_maxNodes int
}

func NewDtNodePool(maxNodes int) *DtNodePool {
	common.AssertTrue(maxNodes > 0, "node pool size must be positive, got %d", maxNodes)
	return &DtNodePool{
		m_nodes:    make(map[DtTriRef]*DtNode, min(maxNodes, 1024)),
		m_maxNodes: maxNodes,
	}
}

func (p *DtNodePool) GetMaxNodes() int             { return p.m_maxNodes }
func (p *DtNodePool) GetNodeCount() int            { return len(p.m_nodes) }
func (p *DtNodePool) Clear()                       { clear(p.m_nodes) }
func (p *DtNodePool) FindNode(id DtTriRef) *DtNode { return p.m_nodes[id] }

// GetNode returns the node for id, allocating a fresh one on first use.
// It returns nil when the pool is exhausted.
func (p *DtNodePool) GetNode(id DtTriRef) *DtNode {
	if node, ok := p.m_nodes[id]; ok {
		return node
	}
	if len(p.m_nodes) >= p.m_maxNodes {
		return nil
	}
	node := &DtNode{Id: id}
	p.m_nodes[id] = node
	return node
}

// DtSortedNodeList is the open list of a best-first search: a slice kept in
// ascending EstimatedCombinedWeight order plus a reference counted set for
// membership tests.
//
// An ordered slice is used instead of a heap. Insertion costs a binary search
// plus an O(n) shift, but the list can be iterated in order and resorted
// cheaply, which some search variants rely on. Nodes with equal weight are
// kept in insertion order: a new node goes after all nodes of equal weight.
//
// The list is not safe for concurrent use; each search owns its own list.
type DtSortedNodeList[T SearchNode] struct {
	nodes    []T
	head     int
	contains map[T]int
}

// NewDtSortedNodeList creates an empty list with room for sizeHint nodes.
func NewDtSortedNodeList[T SearchNode](sizeHint int) *DtSortedNodeList[T] {
	sizeHint = max(sizeHint, 0)
	return &DtSortedNodeList[T]{
		nodes:    make([]T, 0, sizeHint),
		contains: make(map[T]int, sizeHint),
	}
}

// InsertSorted inserts node after every node whose weight is less than or
// equal to its own. Nodes are never deduplicated.
func (l *DtSortedNodeList[T]) InsertSorted(node T) {
	l.contains[node]++

	live := l.nodes[l.head:]
	weight := node.EstimatedCombinedWeight()
	i := sort.Search(len(live), func(i int) bool {
		return live[i].EstimatedCombinedWeight() > weight
	})
	if i == 0 && l.head > 0 {
		l.head--
		l.nodes[l.head] = node
		return
	}
	l.nodes = slices.Insert(l.nodes, l.head+i, node)
}

// PopMin removes and returns the node with the lowest weight. The boolean is
// false when the list is empty.
func (l *DtSortedNodeList[T]) PopMin() (node T, ok bool) {
	if l.Empty() {
		return node, false
	}
	var zero T
	node = l.nodes[l.head]
	l.nodes[l.head] = zero
	l.head++
	l.forget(node)
	l.compact()
	return node, true
}

// Peek returns the node with the lowest weight without removing it.
func (l *DtSortedNodeList[T]) Peek() (node T, ok bool) {
	if l.Empty() {
		return node, false
	}
	return l.nodes[l.head], true
}

// Remove removes one reference to node. It must be called before the node's
// weight is changed; re-insert it afterwards.
func (l *DtSortedNodeList[T]) Remove(node T) bool {
	if !l.Contains(node) {
		return false
	}
	live := l.nodes[l.head:]
	weight := node.EstimatedCombinedWeight()
	i := sort.Search(len(live), func(i int) bool {
		return live[i].EstimatedCombinedWeight() >= weight
	})
	for ; i < len(live) && live[i].EstimatedCombinedWeight() == weight; i++ {
		if live[i] == node {
			l.removeAt(l.head + i)
			return true
		}
	}
	// Weight changed out of band, fall back to a scan.
	if i := slices.Index(live, node); i >= 0 {
		l.removeAt(l.head + i)
		return true
	}
	return false
}

func (l *DtSortedNodeList[T]) removeAt(i int) {
	node := l.nodes[i]
	l.nodes = slices.Delete(l.nodes, i, i+1)
	l.forget(node)
}

func (l *DtSortedNodeList[T]) forget(node T) {
	if n := l.contains[node]; n > 1 {
		l.contains[node] = n - 1
	} else {
		delete(l.contains, node)
	}
}

// compact drops the popped prefix once it outweighs the live part.
func (l *DtSortedNodeList[T]) compact() {
	if l.head == len(l.nodes) {
		l.nodes = l.nodes[:0]
		l.head = 0
		return
	}
	if l.head > 32 && l.head > len(l.nodes)/2 {
		n := copy(l.nodes, l.nodes[l.head:])
		clear(l.nodes[n:])
		l.nodes = l.nodes[:n]
		l.head = 0
	}
}

// Contains reports whether node is in the list, independent of its position.
func (l *DtSortedNodeList[T]) Contains(node T) bool {
	return l.contains[node] > 0
}

func (l *DtSortedNodeList[T]) Size() int   { return len(l.nodes) - l.head }
func (l *DtSortedNodeList[T]) Empty() bool { return l.Size() == 0 }

// Clear empties the list and its membership set.
func (l *DtSortedNodeList[T]) Clear() {
	clear(l.nodes)
	l.nodes = l.nodes[:0]
	l.head = 0
	clear(l.contains)
}

// Resort restores ascending order after weights were changed in place.
// Nodes of equal weight keep their relative order.
func (l *DtSortedNodeList[T]) Resort() {
	slices.SortStableFunc(l.nodes[l.head:], func(a, b T) int {
		return cmp.Compare(a.EstimatedCombinedWeight(), b.EstimatedCombinedWeight())
	})
}

// Nodes returns the nodes in ascending weight order.
func (l *DtSortedNodeList[T]) Nodes() []T {
	return slices.Clone(l.nodes[l.head:])
}
