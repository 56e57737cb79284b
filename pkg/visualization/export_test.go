package visualization

import (
	"testing"

	"github.com/carbonloop/metallca/pkg/graph"
	"github.com/carbonloop/metallca/pkg/routes"
)

func TestExport_EmptyGraph(t *testing.T) {
	view := Export(graph.New("empty_process"))
	if view.ProcessID != "empty_process" {
		t.Errorf("Expected process id carried over, got %q", view.ProcessID)
	}
	if view.Nodes == nil || view.Edges == nil {
		t.Error("Expected empty slices, not nil, so JSON renders [] rather than null")
	}
	if len(view.Nodes) != 0 || len(view.Edges) != 0 {
		t.Errorf("Expected empty view, got %d nodes, %d edges", len(view.Nodes), len(view.Edges))
	}
}

func TestExport_NodeProjection(t *testing.T) {
	g := graph.New("p1")
	n := g.AddNode(graph.KindMine, map[string]graph.Value{
		"name":      graph.StringValue("Copper_mine"),
		"ore_grade": graph.FloatValue(55),
	})

	view := Export(g)
	if len(view.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(view.Nodes))
	}

	vn := view.Nodes[0]
	if vn.ID != n.ID {
		t.Errorf("Expected id %d, got %d", n.ID, vn.ID)
	}
	if vn.Label != "Mine\nCopper_mine" {
		t.Errorf("Unexpected label %q", vn.Label)
	}
	if vn.Group != "mine" {
		t.Errorf("Expected group mine, got %q", vn.Group)
	}
	if vn.Attributes["ore_grade"] != 55.0 {
		t.Errorf("Expected ore_grade 55, got %v", vn.Attributes["ore_grade"])
	}
}

// TestExport_LabelFallback: display names prefer name, then type, then metal.
func TestExport_LabelFallback(t *testing.T) {
	g := graph.New("p1")
	g.AddNode(graph.KindProcessing, map[string]graph.Value{
		"type":  graph.StringValue("smelting"),
		"metal": graph.StringValue("Zinc"),
	})
	g.AddNode(graph.KindProduct, map[string]graph.Value{
		"metal": graph.StringValue("Zinc"),
	})
	g.AddNode(graph.KindSorting, map[string]graph.Value{
		"purity": graph.FloatValue(0.95),
	})

	view := Export(g)
	if view.Nodes[0].Label != "Processing\nsmelting" {
		t.Errorf("Expected type fallback, got %q", view.Nodes[0].Label)
	}
	if view.Nodes[1].Label != "Product\nZinc" {
		t.Errorf("Expected metal fallback, got %q", view.Nodes[1].Label)
	}
	if view.Nodes[2].Label != "Sorting\n" {
		t.Errorf("Expected empty display name, got %q", view.Nodes[2].Label)
	}
}

func TestExport_EdgeProjection(t *testing.T) {
	g := graph.New("p1")
	a := g.AddNode(graph.KindEndOfLife, nil)
	b := g.AddNode(graph.KindScrap, nil)
	if _, err := g.AddEdge(a.ID, b.ID, graph.RelFeedsBack); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}

	view := Export(g)
	if len(view.Edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(view.Edges))
	}
	e := view.Edges[0]
	if e.From != a.ID || e.To != b.ID {
		t.Errorf("Expected edge %d -> %d, got %d -> %d", a.ID, b.ID, e.From, e.To)
	}
	if e.Label != "FEEDS_BACK" {
		t.Errorf("Expected label FEEDS_BACK, got %q", e.Label)
	}
	if e.Arrows != "to" {
		t.Errorf("Expected arrows to, got %q", e.Arrows)
	}
}

// TestExport_RecycledRoute projects a full built pathway and checks the
// counts line up with the source graph.
func TestExport_RecycledRoute(t *testing.T) {
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

	view := Export(g)
	if view.ProcessID != "copper_recycled_1" {
		t.Errorf("Expected process id copper_recycled_1, got %q", view.ProcessID)
	}
	if len(view.Nodes) != g.NodeCount() {
		t.Errorf("Expected %d nodes, got %d", g.NodeCount(), len(view.Nodes))
	}
	if len(view.Edges) != g.EdgeCount() {
		t.Errorf("Expected %d edges, got %d", g.EdgeCount(), len(view.Edges))
	}
}
