package graph

// Graph is the in-memory process graph for one process_id. Nodes and edges
// are stored in insertion order (scan order for the analyzers is defined as
// insertion order, not traversal order) alongside O(1) lookup maps and
// adjacency lists in both directions.
//
// A Graph is mutable only while the builder assembles it. Once handed to the
// Store it is treated as immutable: analyzers read, never write.
type Graph struct {
	processID string

	nodes     []*Node
	nodesByID map[uint64]*Node
	edges     []*Edge

	out map[uint64][]*Edge
	in  map[uint64][]*Edge

	nextNodeID uint64
	nextEdgeID uint64
}

// New creates an empty graph for the given process_id.
func New(processID string) *Graph {
	return &Graph{
		processID: processID,
		nodesByID: make(map[uint64]*Node),
		out:       make(map[uint64][]*Edge),
		in:        make(map[uint64][]*Edge),
	}
}

// ProcessID returns the process_id namespace this graph belongs to.
func (g *Graph) ProcessID() string {
	return g.processID
}

// AddNode creates a node of the given kind and returns its handle.
// The attrs map is copied; callers may reuse it.
func (g *Graph) AddNode(kind Kind, attrs map[string]Value) *Node {
	g.nextNodeID++
	node := &Node{
		ID:    g.nextNodeID,
		Kind:  kind,
		Attrs: make(map[string]Value, len(attrs)),
	}
	for k, v := range attrs {
		node.Attrs[k] = v
	}
	g.nodes = append(g.nodes, node)
	g.nodesByID[node.ID] = node
	return node
}

// AddEdge creates a directed edge between two nodes of this graph.
// Both endpoints must already exist here; referencing a node outside the
// graph fails with an IntegrityError. Self-loops are rejected: loops in a
// process graph only arise from multi-node FEEDS_INTO/FEEDS_BACK cycles.
func (g *Graph) AddEdge(from, to uint64, relation Relation) (*Edge, error) {
	if _, ok := g.nodesByID[from]; !ok {
		return nil, &IntegrityError{Op: "AddEdge", ProcessID: g.processID, NodeID: from, Cause: ErrNodeNotFound}
	}
	if _, ok := g.nodesByID[to]; !ok {
		return nil, &IntegrityError{Op: "AddEdge", ProcessID: g.processID, NodeID: to, Cause: ErrNodeNotFound}
	}
	if from == to {
		return nil, &IntegrityError{Op: "AddEdge", ProcessID: g.processID, NodeID: from, Cause: ErrSelfLoop}
	}

	g.nextEdgeID++
	edge := &Edge{
		ID:       g.nextEdgeID,
		From:     from,
		To:       to,
		Relation: relation,
	}
	g.edges = append(g.edges, edge)
	g.out[from] = append(g.out[from], edge)
	g.in[to] = append(g.in[to], edge)
	return edge, nil
}

// GetNode returns the node with the given handle.
func (g *Graph) GetNode(id uint64) (*Node, error) {
	node, ok := g.nodesByID[id]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return node, nil
}

// Nodes returns all nodes in insertion order. The returned slice is shared;
// callers must not modify it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns all edges in insertion order. The returned slice is shared;
// callers must not modify it.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// OutgoingEdges returns the edges leaving the given node, in insertion order.
func (g *Graph) OutgoingEdges(id uint64) []*Edge {
	return g.out[id]
}

// IncomingEdges returns the edges arriving at the given node, in insertion order.
func (g *Graph) IncomingEdges(id uint64) []*Edge {
	return g.in[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// NodesOfKind returns all nodes of the given kind, in insertion order.
func (g *Graph) NodesOfKind(kind Kind) []*Node {
	var matched []*Node
	for _, n := range g.nodes {
		if n.Kind == kind {
			matched = append(matched, n)
		}
	}
	return matched
}
