package circularity

import (
	"fmt"
	"testing"

	"github.com/carbonloop/metallca/pkg/graph"
	"github.com/carbonloop/metallca/pkg/routes"
)

func mustBuild(t *testing.T, route routes.Route, p routes.Params) *graph.Graph {
	t.Helper()
	g, err := routes.Build("test_process", route, p)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestCompute_EmptyGraph(t *testing.T) {
	m := Compute(graph.New("empty"))
	if m != (Metrics{}) {
		t.Errorf("Expected zero metrics for empty graph, got %+v", m)
	}
	if got := Compute(nil); got != (Metrics{}) {
		t.Errorf("Expected zero metrics for nil graph, got %+v", got)
	}
}

// TestCompute_PrimaryNoRecycling covers the linear primary pathway: no loops,
// one waste stream, and a waste penalty that clamps the score to zero.
func TestCompute_PrimaryNoRecycling(t *testing.T) {
	g := mustBuild(t, routes.RoutePrimary, routes.Params{
		MetalType:          "Aluminium",
		ProcessingLocation: "Norway",
		ProductionCapacity: 5000,
		EnergySource:       "Coal",
		EndOfLifeOption:    "Landfill",
	})

	m := Compute(g)
	if m.LoopCount != 0 {
		t.Errorf("Expected 0 loops, got %d", m.LoopCount)
	}
	if m.AvgLoopLength != 0 {
		t.Errorf("Expected avg loop length 0, got %v", m.AvgLoopLength)
	}
	if m.RecyclingEfficiency != 0 {
		t.Errorf("Expected recycling efficiency 0, got %v", m.RecyclingEfficiency)
	}
	if m.WasteStreams != 1 {
		t.Errorf("Expected 1 waste stream, got %d", m.WasteStreams)
	}
	if m.Score != 0 {
		t.Errorf("Expected score clamped to 0, got %v", m.Score)
	}
}

// TestCompute_PrimaryWithRecycling covers the primary pathway with a closing
// Product -> EndOfLife -> Recycling -> Product loop of 3 edges.
func TestCompute_PrimaryWithRecycling(t *testing.T) {
	rate := 60.0
	g := mustBuild(t, routes.RoutePrimary, routes.Params{
		MetalType:          "Steel",
		ProcessingLocation: "Germany",
		ProductionCapacity: 12000,
		EnergySource:       "Grid",
		EndOfLifeOption:    "Recycling",
		RecyclingRate:      &rate,
	})

	m := Compute(g)
	if m.LoopCount != 1 {
		t.Errorf("Expected 1 loop, got %d", m.LoopCount)
	}
	if m.AvgLoopLength != 3 {
		t.Errorf("Expected avg loop length 3, got %v", m.AvgLoopLength)
	}
	if m.RecyclingEfficiency != 60 {
		t.Errorf("Expected recycling efficiency 60, got %v", m.RecyclingEfficiency)
	}
	if m.WasteStreams != 1 {
		t.Errorf("Expected 1 waste stream, got %d", m.WasteStreams)
	}
	// 10*0.4 + 60*0.5 - 1*5 = 29
	if m.Score != 29 {
		t.Errorf("Expected score 29, got %v", m.Score)
	}
}

// TestCompute_RecycledRoute covers the inherent 6-edge loop of the recycled
// pathway at the default 80 percent recycling rate.
func TestCompute_RecycledRoute(t *testing.T) {
	g := mustBuild(t, routes.RouteRecycled, routes.Params{
		MetalType:          "Copper",
		ProcessingLocation: "Chile",
		ProductionCapacity: 3000,
		EnergySource:       "Grid + Hydro",
		EndOfLifeOption:    "Recycling",
	})

	m := Compute(g)
	if m.LoopCount != 1 {
		t.Errorf("Expected exactly 1 loop, got %d", m.LoopCount)
	}
	if m.AvgLoopLength != 6 {
		t.Errorf("Expected avg loop length 6, got %v", m.AvgLoopLength)
	}
	if m.RecyclingEfficiency != 80 {
		t.Errorf("Expected recycling efficiency 80, got %v", m.RecyclingEfficiency)
	}
	if m.WasteStreams != 0 {
		t.Errorf("Expected 0 waste streams, got %d", m.WasteStreams)
	}
	// 10*0.4 + 80*0.5 - 0 = 44
	if m.Score != 44 {
		t.Errorf("Expected score 44, got %v", m.Score)
	}
}

// TestCompute_CycleCountedOnce verifies a cycle is not counted once per
// node it passes through.
func TestCompute_CycleCountedOnce(t *testing.T) {
	g := graph.New("ring")
	a := g.AddNode(graph.KindProduct, nil)
	b := g.AddNode(graph.KindEndOfLife, nil)
	c := g.AddNode(graph.KindRecycling, map[string]graph.Value{"rate": graph.FloatValue(50)})
	g.AddEdge(a.ID, b.ID, graph.RelEndsAs)
	g.AddEdge(b.ID, c.ID, graph.RelFeedsInto)
	g.AddEdge(c.ID, a.ID, graph.RelProduces)

	m := Compute(g)
	if m.LoopCount != 1 {
		t.Errorf("Expected cycle counted once, got %d", m.LoopCount)
	}
}

// TestCompute_CycleWithoutRecyclingEdgeIgnored verifies cycles that never
// pass through a FEEDS_INTO or FEEDS_BACK edge do not count.
func TestCompute_CycleWithoutRecyclingEdgeIgnored(t *testing.T) {
	g := graph.New("non_material_ring")
	a := g.AddNode(graph.KindProcessing, nil)
	b := g.AddNode(graph.KindProduct, nil)
	g.AddEdge(a.ID, b.ID, graph.RelProduces)
	g.AddEdge(b.ID, a.ID, graph.RelSendsTo)

	m := Compute(g)
	if m.LoopCount != 0 {
		t.Errorf("Expected 0 loops without recycling edges, got %d", m.LoopCount)
	}
}

// TestCompute_LongCycleExceedsBound verifies cycles longer than MaxLoopLength
// edges are never counted.
func TestCompute_LongCycleExceedsBound(t *testing.T) {
	g := graph.New("long_ring")
	nodes := make([]*graph.Node, MaxLoopLength+1)
	for i := range nodes {
		nodes[i] = g.AddNode(graph.KindProcessing, nil)
	}
	for i := range nodes {
		rel := graph.RelSendsTo
		if i == 0 {
			rel = graph.RelFeedsInto
		}
		if _, err := g.AddEdge(nodes[i].ID, nodes[(i+1)%len(nodes)].ID, rel); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}

	m := Compute(g)
	if m.LoopCount != 0 {
		t.Errorf("Expected %d-edge cycle to exceed the loop bound, got %d loops", MaxLoopLength+1, m.LoopCount)
	}
}

// TestCompute_TwoDisjointLoops verifies independent loops are both counted.
func TestCompute_TwoDisjointLoops(t *testing.T) {
	g := graph.New("double_ring")
	for ring := 0; ring < 2; ring++ {
		a := g.AddNode(graph.KindProduct, nil)
		b := g.AddNode(graph.KindRecycling, map[string]graph.Value{"rate": graph.FloatValue(40)})
		g.AddEdge(a.ID, b.ID, graph.RelFeedsInto)
		g.AddEdge(b.ID, a.ID, graph.RelProduces)
	}

	m := Compute(g)
	if m.LoopCount != 2 {
		t.Errorf("Expected 2 loops, got %d", m.LoopCount)
	}
	if m.AvgLoopLength != 2 {
		t.Errorf("Expected avg loop length 2, got %v", m.AvgLoopLength)
	}
}

func TestCompositeScore_Table(t *testing.T) {
	tests := []struct {
		loops      int
		efficiency float64
		waste      int
		want       float64
	}{
		{0, 0, 0, 0},
		{0, 0, 1, 0},    // waste penalty floors at 0
		{1, 80, 0, 44},  // recycled-route shape
		{1, 60, 1, 29},  // primary with recycling
		{10, 100, 0, 90},
		{25, 100, 0, 90}, // loop score saturates at 100
		{10, 100, 20, 0},
		{10, 200, 0, 100}, // clamped at 100
	}

	for _, tt := range tests {
		name := fmt.Sprintf("loops=%d/eff=%g/waste=%d", tt.loops, tt.efficiency, tt.waste)
		t.Run(name, func(t *testing.T) {
			if got := CompositeScore(tt.loops, tt.efficiency, tt.waste); got != tt.want {
				t.Errorf("CompositeScore = %v, want %v", got, tt.want)
			}
		})
	}
}
