package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeID addresses a node inside a Graph. IDs stay valid for the
// lifetime of the graph, detached nodes keep theirs.
type NodeID int

const NoNode NodeID = -1

type node struct {
	local    mgl32.Mat4
	mesh     *Mesh
	parent   NodeID
	children []NodeID
}

// Graph is an arena of nodes forming a forest of transform hierarchies.
type Graph struct {
	nodes []node
}

func NewGraph() *Graph {
	return &Graph{}
}

// NewNode adds a detached node, mesh may be nil.
func (g *Graph) NewNode(mesh *Mesh, local mgl32.Mat4) NodeID {
	g.nodes = append(g.nodes, node{
		local:  local,
		mesh:   mesh,
		parent: NoNode,
	})
	return NodeID(len(g.nodes) - 1)
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) check(ids ...NodeID) error {
	for _, id := range ids {
		if !g.Valid(id) {
			return fmt.Errorf("node %d: %w", id, ErrInvalidNode)
		}
	}
	return nil
}

// Local returns the transform relative to the parent, identity for
// invalid ids.
func (g *Graph) Local(id NodeID) mgl32.Mat4 {
	if !g.Valid(id) {
		return mgl32.Ident4()
	}
	return g.nodes[id].local
}

func (g *Graph) SetLocal(id NodeID, m mgl32.Mat4) error {
	if err := g.check(id); err != nil {
		return err
	}
	g.nodes[id].local = m
	return nil
}

func (g *Graph) Mesh(id NodeID) *Mesh {
	if !g.Valid(id) {
		return nil
	}
	return g.nodes[id].mesh
}

func (g *Graph) Parent(id NodeID) NodeID {
	if !g.Valid(id) {
		return NoNode
	}
	return g.nodes[id].parent
}

// Children returns a copy of the ordered child list.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.Valid(id) {
		return nil
	}
	return append([]NodeID(nil), g.nodes[id].children...)
}

// IsAncestor reports whether a lies on the parent chain of b, a node is
// its own ancestor.
func (g *Graph) IsAncestor(a, b NodeID) bool {
	if !g.Valid(a) || !g.Valid(b) {
		return false
	}
	for n := b; n != NoNode; n = g.nodes[n].parent {
		if n == a {
			return true
		}
	}
	return false
}

func (g *Graph) AddChild(parent, child NodeID) error {
	if err := g.check(parent); err != nil {
		return err
	}

	children := append(g.Children(parent), child)
	return g.SetChildren(parent, children...)
}

// SetChildren replaces the whole child list of parent. Nodes passed in
// are detached from their previous parents, previous children not passed
// in stay in the arena without a parent. Nothing changes on error.
func (g *Graph) SetChildren(parent NodeID, children ...NodeID) error {
	if err := g.check(parent); err != nil {
		return err
	}
	if err := g.check(children...); err != nil {
		return err
	}

	seen := make(map[NodeID]struct{}, len(children))
	for _, c := range children {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("node %d listed twice: %w", c, ErrInvalidNode)
		}
		seen[c] = struct{}{}

		if g.IsAncestor(c, parent) {
			return fmt.Errorf("node %d under %d: %w", c, parent, ErrCycle)
		}
	}

	for _, c := range g.nodes[parent].children {
		g.nodes[c].parent = NoNode
	}

	for _, c := range children {
		if p := g.nodes[c].parent; p != NoNode {
			g.removeChild(p, c)
		}
		g.nodes[c].parent = parent
	}

	g.nodes[parent].children = append([]NodeID(nil), children...)
	return nil
}

func (g *Graph) removeChild(parent, child NodeID) {
	cs := g.nodes[parent].children
	for i, c := range cs {
		if c == child {
			g.nodes[parent].children = append(cs[:i:i], cs[i+1:]...)
			return
		}
	}
}

// ToParentTransform maps coordinates of target into the coordinate system
// of ancestor, composing the local transforms of every node below ancestor
// down to and including target. ancestor's own local transform is not
// applied, so ToParentTransform(a, b) * ToParentTransform(b, c) equals
// ToParentTransform(a, c). An unreachable target yields the identity and
// ErrUnreachable.
func (g *Graph) ToParentTransform(ancestor, target NodeID) (mgl32.Mat4, error) {
	if err := g.check(ancestor, target); err != nil {
		return mgl32.Ident4(), err
	}

	m := mgl32.Ident4()
	for n := target; n != ancestor; n = g.nodes[n].parent {
		if n == NoNode {
			return mgl32.Ident4(), fmt.Errorf("node %d from %d: %w", target, ancestor, ErrUnreachable)
		}
		m = g.nodes[n].local.Mul4(m)
	}
	return m, nil
}

// WorldTransform composes every local transform from the root of id's
// tree down to id, the root's own transform included.
func (g *Graph) WorldTransform(id NodeID) mgl32.Mat4 {
	if !g.Valid(id) {
		return mgl32.Ident4()
	}

	m := mgl32.Ident4()
	for n := id; n != NoNode; n = g.nodes[n].parent {
		m = g.nodes[n].local.Mul4(m)
	}
	return m
}

// Root walks up the parent chain of id.
func (g *Graph) Root(id NodeID) NodeID {
	if !g.Valid(id) {
		return NoNode
	}
	for g.nodes[id].parent != NoNode {
		id = g.nodes[id].parent
	}
	return id
}

// DrawFunc is called for every mesh with its composed model matrix.
type DrawFunc func(mesh *Mesh, model mgl32.Mat4, cam Camera, pass int) error

// Draw walks the subtree at root depth first, children in insertion
// order, and calls fn for every node holding a mesh. The transform of
// root itself is applied.
func (g *Graph) Draw(root NodeID, cam Camera, pass int, fn DrawFunc) error {
	if err := g.check(root); err != nil {
		return err
	}
	return g.draw(root, mgl32.Ident4(), cam, pass, fn)
}

func (g *Graph) draw(id NodeID, parent mgl32.Mat4, cam Camera, pass int, fn DrawFunc) error {
	n := &g.nodes[id]
	model := parent.Mul4(n.local)

	if n.mesh != nil {
		if err := fn(n.mesh, model, cam, pass); err != nil {
			return err
		}
	}

	for _, c := range n.children {
		if err := g.draw(c, model, cam, pass, fn); err != nil {
			return err
		}
	}
	return nil
}
