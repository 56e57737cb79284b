// Package visualization flattens a process graph into the generic node/edge
// list the frontend renderer consumes. Pure projection, no algorithmic
// content.
package visualization

import (
	"strings"

	"github.com/carbonloop/metallca/pkg/graph"
)

// labelAttrs are tried in order when choosing a node's display name.
var labelAttrs = []string{"name", "type", "metal"}

// VisNode is one renderable node.
type VisNode struct {
	ID         uint64         `json:"id"`
	Label      string         `json:"label"`
	Group      string         `json:"group"`
	Attributes map[string]any `json:"attributes"`
	Position   *Position      `json:"position,omitempty"`
}

// VisEdge is one renderable directed edge.
type VisEdge struct {
	From   uint64 `json:"from"`
	To     uint64 `json:"to"`
	Label  string `json:"label"`
	Arrows string `json:"arrows"`
}

// View is the flattened projection of one process graph.
type View struct {
	ProcessID string    `json:"process_id"`
	Nodes     []VisNode `json:"nodes"`
	Edges     []VisEdge `json:"edges"`
}

// Export projects g for external rendering. Node groups are the lowercase
// kind; labels pair the kind with the best available name attribute.
func Export(g *graph.Graph) *View {
	view := &View{
		ProcessID: g.ProcessID(),
		Nodes:     make([]VisNode, 0, g.NodeCount()),
		Edges:     make([]VisEdge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		attrs := make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			attrs[k] = v.Interface()
		}
		view.Nodes = append(view.Nodes, VisNode{
			ID:         n.ID,
			Label:      string(n.Kind) + "\n" + displayName(n),
			Group:      strings.ToLower(string(n.Kind)),
			Attributes: attrs,
		})
	}

	for _, e := range g.Edges() {
		view.Edges = append(view.Edges, VisEdge{
			From:   e.From,
			To:     e.To,
			Label:  string(e.Relation),
			Arrows: "to",
		})
	}

	return view
}

func displayName(n *graph.Node) string {
	for _, key := range labelAttrs {
		if v, ok := n.Attr(key); ok {
			return v.AsString()
		}
	}
	return ""
}
