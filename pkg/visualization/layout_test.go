package visualization

import (
	"math"
	"testing"

	"github.com/carbonloop/metallca/pkg/graph"
	"github.com/carbonloop/metallca/pkg/routes"
)

func buildRecycledGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := routes.Build("copper_recycled_1", routes.RouteRecycled, routes.Params{
		MetalType:          "Copper",
		ProcessingLocation: "Chile",
		ProductionCapacity: 3000,
		EnergySource:       "Grid + Hydro",
		EndOfLifeOption:    "Recycling",
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestCircularLayout(t *testing.T) {
	g := buildRecycledGraph(t)
	cl := &CircularLayout{Config: DefaultLayoutConfig()}

	positions := cl.ComputeLayout(g)
	if len(positions) != g.NodeCount() {
		t.Fatalf("Expected %d positions, got %d", g.NodeCount(), len(positions))
	}

	// Every node sits on the same circle around the canvas center.
	cfg := cl.Config
	centerX, centerY := cfg.Width/2, cfg.Height/2
	wantRadius := math.Min(cfg.Width, cfg.Height)/2 - cfg.Padding
	for id, pos := range positions {
		r := math.Hypot(pos.X-centerX, pos.Y-centerY)
		if math.Abs(r-wantRadius) > 1e-9 {
			t.Errorf("Node %d at radius %v, want %v", id, r, wantRadius)
		}
	}
}

func TestCircularLayout_EmptyGraph(t *testing.T) {
	cl := &CircularLayout{Config: DefaultLayoutConfig()}
	if positions := cl.ComputeLayout(graph.New("empty")); len(positions) != 0 {
		t.Errorf("Expected no positions, got %d", len(positions))
	}
}

func TestHierarchicalLayout_PrimaryFlow(t *testing.T) {
	g, err := routes.Build("al_primary", routes.RoutePrimary, routes.Params{
		MetalType:          "Aluminium",
		ProcessingLocation: "Norway",
		ProductionCapacity: 5000,
		EnergySource:       "Coal",
		EndOfLifeOption:    "Landfill",
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	hl := &HierarchicalLayout{Config: DefaultLayoutConfig()}
	positions := hl.ComputeLayout(g)
	if len(positions) != g.NodeCount() {
		t.Fatalf("Expected %d positions, got %d", g.NodeCount(), len(positions))
	}

	// The mine is the only source; downstream stages sit on lower rows.
	mine := g.NodesOfKind(graph.KindMine)[0]
	eol := g.NodesOfKind(graph.KindEndOfLife)[0]
	if positions[mine.ID].Y >= positions[eol.ID].Y {
		t.Errorf("Expected mine above end of life, got %v vs %v",
			positions[mine.ID].Y, positions[eol.ID].Y)
	}

	cfg := hl.Config
	for id, pos := range positions {
		if pos.X < cfg.Padding || pos.X > cfg.Width-cfg.Padding ||
			pos.Y < cfg.Padding || pos.Y > cfg.Height-cfg.Padding {
			t.Errorf("Node %d at %v outside padded canvas", id, pos)
		}
	}
}

// TestHierarchicalLayout_PureRing: a sourceless ring still gets every node
// positioned, anchored at the first inserted node.
func TestHierarchicalLayout_PureRing(t *testing.T) {
	g := buildRecycledGraph(t)

	hl := &HierarchicalLayout{Config: DefaultLayoutConfig()}
	positions := hl.ComputeLayout(g)
	if len(positions) != g.NodeCount() {
		t.Fatalf("Expected %d positions, got %d", g.NodeCount(), len(positions))
	}
}

func TestLayoutByName(t *testing.T) {
	if _, ok := LayoutByName("circular").(*CircularLayout); !ok {
		t.Error("Expected circular layout")
	}
	if _, ok := LayoutByName("hierarchical").(*HierarchicalLayout); !ok {
		t.Error("Expected hierarchical layout")
	}
	if l := LayoutByName(""); l != nil {
		t.Errorf("Expected nil for empty selector, got %T", l)
	}
	if l := LayoutByName("spiral"); l != nil {
		t.Errorf("Expected nil for unknown selector, got %T", l)
	}
}

func TestExportPositioned(t *testing.T) {
	g := buildRecycledGraph(t)

	plain := ExportPositioned(g, nil)
	for _, n := range plain.Nodes {
		if n.Position != nil {
			t.Fatal("Expected no positions without a layout")
		}
	}

	view := ExportPositioned(g, LayoutByName("circular"))
	for _, n := range view.Nodes {
		if n.Position == nil {
			t.Fatalf("Node %d missing position", n.ID)
		}
	}
}
