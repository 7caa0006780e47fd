package menu

import "strings"

// Node is one entry in the registry tree. Branch nodes carry the Items shown
// when the node opens; leaf nodes carry the Action that fires on selection.
type Node struct {
	ID       string
	Items    []Item
	Action   Action
	Children map[string]*Node
}

// Registry resolves menu nodes by ID. IDs nest with ":" (signal:terminate
// lives under signal), mirroring how actions register themselves.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry assembles the menu tree from the signal catalog.
func BuildRegistry() *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	r.root = r.node("root")
	r.root.Items = []Item{{ID: "signal", Label: "signal"}}
	r.node("signal").Items = SignalItems()
	for id, action := range ActionHandlers() {
		r.node(id).Action = action
	}
	r.link()
	return r
}

// node returns the entry for id, creating it on first use.
func (r *Registry) node(id string) *Node {
	if n, ok := r.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Children: make(map[string]*Node)}
	r.nodes[id] = n
	return n
}

// link attaches every non-root node under its parent.
func (r *Registry) link() {
	for id, n := range r.nodes {
		if id == "root" {
			continue
		}
		parentID, key := parentKey(id)
		r.node(parentID).Children[key] = n
	}
}

// Root returns the registry root node.
func (r *Registry) Root() *Node { return r.root }

// Find locates a node by its full ID.
func (r *Registry) Find(id string) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Child resolves key under parentID.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	n, ok := parent.Children[key]
	return n, ok
}

// parentKey splits an ID at its last ":". IDs without a separator hang off
// the root.
func parentKey(id string) (string, string) {
	idx := strings.LastIndex(id, ":")
	if idx < 0 {
		if id == "" {
			return "root", ""
		}
		return "root", id
	}
	return id[:idx], id[idx+1:]
}
