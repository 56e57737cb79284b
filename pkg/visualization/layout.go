package visualization

import (
	"math"

	"github.com/carbonloop/metallca/pkg/graph"
)

// Position is a 2D canvas coordinate for one node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width   float64 // Canvas width
	Height  float64 // Canvas height
	Padding float64 // Padding from edges
}

// DefaultLayoutConfig returns sensible defaults for the frontend canvas.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{Width: 800, Height: 600, Padding: 50}
}

// Layout computes canvas positions for every node of a process graph.
type Layout interface {
	ComputeLayout(g *graph.Graph) map[uint64]Position
}

// CircularLayout arranges nodes evenly on a circle. Suited to the recycled
// pathway, whose topology is itself a ring.
type CircularLayout struct {
	Config LayoutConfig
}

// ComputeLayout places nodes on a circle in insertion order, which for the
// built routes is also flow order.
func (cl *CircularLayout) ComputeLayout(g *graph.Graph) map[uint64]Position {
	cfg := cl.Config
	nodes := g.Nodes()
	positions := make(map[uint64]Position, len(nodes))
	if len(nodes) == 0 {
		return positions
	}

	centerX := cfg.Width / 2
	centerY := cfg.Height / 2
	radius := math.Min(cfg.Width, cfg.Height)/2 - cfg.Padding

	step := 2 * math.Pi / float64(len(nodes))
	for i, n := range nodes {
		angle := float64(i) * step
		positions[n.ID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}

// HierarchicalLayout arranges nodes in layers by their distance from the
// pathway's sources. Suited to the primary pathway, which flows from mine to
// end of life.
type HierarchicalLayout struct {
	Config LayoutConfig
}

// ComputeLayout assigns each node a layer via BFS from the in-degree-zero
// sources and spreads every layer evenly across one row. Nodes only reachable
// through a cycle fall back to layer 0.
func (hl *HierarchicalLayout) ComputeLayout(g *graph.Graph) map[uint64]Position {
	cfg := hl.Config
	nodes := g.Nodes()
	positions := make(map[uint64]Position, len(nodes))
	if len(nodes) == 0 {
		return positions
	}

	layers := assignLayers(g)

	maxLayer := 0
	byLayer := make(map[int][]uint64)
	for _, n := range nodes {
		l := layers[n.ID]
		byLayer[l] = append(byLayer[l], n.ID)
		if l > maxLayer {
			maxLayer = l
		}
	}

	layerHeight := (cfg.Height - 2*cfg.Padding) / float64(maxLayer+1)
	for l := 0; l <= maxLayer; l++ {
		row := byLayer[l]
		if len(row) == 0 {
			continue
		}
		spacing := (cfg.Width - 2*cfg.Padding) / float64(len(row)+1)
		y := cfg.Padding + layerHeight*float64(l) + layerHeight/2
		for i, id := range row {
			positions[id] = Position{
				X: cfg.Padding + spacing*float64(i+1),
				Y: y,
			}
		}
	}
	return positions
}

// assignLayers BFS-labels every node with its hop distance from the sources.
// Graphs with no source (pure rings) start from the first inserted node.
func assignLayers(g *graph.Graph) map[uint64]int {
	layers := make(map[uint64]int, g.NodeCount())

	var frontier []uint64
	for _, n := range g.Nodes() {
		if len(g.IncomingEdges(n.ID)) == 0 {
			layers[n.ID] = 0
			frontier = append(frontier, n.ID)
		}
	}
	if len(frontier) == 0 && g.NodeCount() > 0 {
		first := g.Nodes()[0]
		layers[first.ID] = 0
		frontier = append(frontier, first.ID)
	}

	for len(frontier) > 0 {
		var next []uint64
		for _, id := range frontier {
			for _, e := range g.OutgoingEdges(id) {
				if _, seen := layers[e.To]; seen {
					continue
				}
				layers[e.To] = layers[id] + 1
				next = append(next, e.To)
			}
		}
		frontier = next
	}
	return layers
}

// LayoutByName resolves a layout selector from the API. Unknown names get nil.
func LayoutByName(name string) Layout {
	cfg := DefaultLayoutConfig()
	switch name {
	case "circular":
		return &CircularLayout{Config: cfg}
	case "hierarchical":
		return &HierarchicalLayout{Config: cfg}
	default:
		return nil
	}
}

// ExportPositioned projects g like Export and additionally attaches canvas
// positions computed by the given layout.
func ExportPositioned(g *graph.Graph, l Layout) *View {
	view := Export(g)
	if l == nil {
		return view
	}
	positions := l.ComputeLayout(g)
	for i := range view.Nodes {
		if pos, ok := positions[view.Nodes[i].ID]; ok {
			p := pos
			view.Nodes[i].Position = &p
		}
	}
	return view
}
