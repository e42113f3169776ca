package scene

import (
	"fmt"
	"sort"
)

// Names resolves node names to ids. A node has at most one name.
type Names struct {
	ids   map[string]NodeID
	names map[NodeID]string
}

func NewNames() *Names {
	return &Names{
		ids:   make(map[string]NodeID),
		names: make(map[NodeID]string),
	}
}

func (n *Names) Bind(name string, id NodeID) error {
	if name == "" {
		return fmt.Errorf("empty name for node %d: %w", id, ErrInvalidNode)
	}
	if other, ok := n.ids[name]; ok {
		return fmt.Errorf("%q bound to node %d: %w", name, other, ErrNameTaken)
	}
	if old, ok := n.names[id]; ok {
		delete(n.ids, old)
	}

	n.ids[name] = id
	n.names[id] = name
	return nil
}

func (n *Names) Lookup(name string) (NodeID, error) {
	id, ok := n.ids[name]
	if !ok {
		return NoNode, fmt.Errorf("%q: %w", name, ErrUnknownNode)
	}
	return id, nil
}

func (n *Names) Name(id NodeID) (string, bool) {
	name, ok := n.names[id]
	return name, ok
}

// List returns all bound names, sorted.
func (n *Names) List() []string {
	list := make([]string, 0, len(n.ids))
	for name := range n.ids {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
