package optimize

import (
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

func TestFind_NilGraph(t *testing.T) {
	if got := Find(nil); got != nil {
		t.Errorf("Expected nil opportunities for nil graph, got %v", got)
	}
}

// TestFind_PrimaryCoal: the primary coal pathway has exactly one opportunity,
// the energy substitution at the processing stage. The waste node only sits
// downstream of processing, so no shortcut exists.
func TestFind_PrimaryCoal(t *testing.T) {
	g := mustBuild(t, routes.RoutePrimary, routes.Params{
		MetalType:          "Aluminium",
		ProcessingLocation: "Norway",
		ProductionCapacity: 5000,
		EnergySource:       "Coal",
		EndOfLifeOption:    "Landfill",
	})

	opps := Find(g)
	if len(opps) != 1 {
		t.Fatalf("Expected 1 opportunity, got %d: %+v", len(opps), opps)
	}

	o := opps[0]
	if o.Type != TypeEnergyOptimization {
		t.Errorf("Expected %s, got %s", TypeEnergyOptimization, o.Type)
	}
	if o.Impact != ImpactMedium {
		t.Errorf("Expected impact Medium, got %s", o.Impact)
	}
	if o.CurrentEnergy != "Coal" {
		t.Errorf("Expected current energy Coal, got %q", o.CurrentEnergy)
	}
	if o.SuggestedEnergy != "Solar + Wind" {
		t.Errorf("Expected suggested energy Solar + Wind, got %q", o.SuggestedEnergy)
	}
	if o.PotentialReduction != "25-40%" {
		t.Errorf("Expected reduction 25-40%%, got %q", o.PotentialReduction)
	}
	if o.Description != "Switch smelting to renewable energy" {
		t.Errorf("Unexpected description %q", o.Description)
	}
}

// TestFind_GridMatchesCaseInsensitively: mixed sources naming grid power are
// flagged regardless of case.
func TestFind_GridMatchesCaseInsensitively(t *testing.T) {
	g := mustBuild(t, routes.RouteRecycled, routes.Params{
		MetalType:          "Copper",
		ProcessingLocation: "Chile",
		ProductionCapacity: 3000,
		EnergySource:       "GRID + Hydro",
		EndOfLifeOption:    "Recycling",
	})

	opps := Find(g)
	if len(opps) != 1 {
		t.Fatalf("Expected 1 opportunity, got %d: %+v", len(opps), opps)
	}
	if opps[0].Type != TypeEnergyOptimization {
		t.Errorf("Expected energy opportunity, got %s", opps[0].Type)
	}
	if opps[0].CurrentEnergy != "GRID + Hydro" {
		t.Errorf("Expected original energy string preserved, got %q", opps[0].CurrentEnergy)
	}
}

func TestFind_RenewableEnergyNotFlagged(t *testing.T) {
	g := mustBuild(t, routes.RoutePrimary, routes.Params{
		MetalType:          "Zinc",
		ProcessingLocation: "Canada",
		ProductionCapacity: 800,
		EnergySource:       "Hydro",
		EndOfLifeOption:    "Landfill",
	})

	if opps := Find(g); len(opps) != 0 {
		t.Errorf("Expected no opportunities for renewable energy, got %+v", opps)
	}
}

// TestFindShortcuts_EmitsOnlyBeyondTwoHops builds waste-to-processing paths
// of varying length by hand and checks the 2-hop threshold.
func TestFindShortcuts_EmitsOnlyBeyondTwoHops(t *testing.T) {
	// 3-hop path: Waste -> Sorting -> Recycling -> Processing.
	g := graph.New("shortcut_candidate")
	waste := g.AddNode(graph.KindWaste, map[string]graph.Value{"type": graph.StringValue("slag")})
	sorting := g.AddNode(graph.KindSorting, nil)
	recycling := g.AddNode(graph.KindRecycling, nil)
	processing := g.AddNode(graph.KindProcessing, map[string]graph.Value{"type": graph.StringValue("smelting")})
	g.AddEdge(waste.ID, sorting.ID, graph.RelSendsTo)
	g.AddEdge(sorting.ID, recycling.ID, graph.RelSendsTo)
	g.AddEdge(recycling.ID, processing.ID, graph.RelFeedsInto)

	opps := Find(g)
	if len(opps) != 1 {
		t.Fatalf("Expected 1 shortcut, got %d: %+v", len(opps), opps)
	}
	o := opps[0]
	if o.Type != TypeCircularLoop {
		t.Errorf("Expected %s, got %s", TypeCircularLoop, o.Type)
	}
	if o.Impact != ImpactHigh {
		t.Errorf("Expected impact High, got %s", o.Impact)
	}
	if o.CurrentSteps != 3 || o.OptimizedSteps != 1 {
		t.Errorf("Expected steps 3 -> 1, got %d -> %d", o.CurrentSteps, o.OptimizedSteps)
	}
	if o.Description != "Connect slag directly to smelting" {
		t.Errorf("Unexpected description %q", o.Description)
	}

	// A direct 2-hop path is already short enough; nothing to report.
	g2 := graph.New("short_enough")
	w2 := g2.AddNode(graph.KindWaste, nil)
	mid := g2.AddNode(graph.KindSorting, nil)
	p2 := g2.AddNode(graph.KindProcessing, nil)
	g2.AddEdge(w2.ID, mid.ID, graph.RelSendsTo)
	g2.AddEdge(mid.ID, p2.ID, graph.RelSendsTo)

	if opps := Find(g2); len(opps) != 0 {
		t.Errorf("Expected no shortcut at 2 hops, got %+v", opps)
	}
}

// TestFindShortcuts_HopBound verifies pairs beyond MaxShortcutHops are not
// candidates.
func TestFindShortcuts_HopBound(t *testing.T) {
	g := graph.New("too_far")
	waste := g.AddNode(graph.KindWaste, nil)
	prev := waste
	for i := 0; i < MaxShortcutHops; i++ {
		next := g.AddNode(graph.KindSorting, nil)
		g.AddEdge(prev.ID, next.ID, graph.RelSendsTo)
		prev = next
	}
	processing := g.AddNode(graph.KindProcessing, nil)
	g.AddEdge(prev.ID, processing.ID, graph.RelSendsTo)

	// Path length is MaxShortcutHops+1, one past the bound.
	if opps := Find(g); len(opps) != 0 {
		t.Errorf("Expected no shortcut beyond %d hops, got %+v", MaxShortcutHops, opps)
	}
}

// TestFind_OrderingIsStable verifies shortcuts come before energy
// substitutions and repeated runs agree.
func TestFind_OrderingIsStable(t *testing.T) {
	g := graph.New("mixed")
	waste := g.AddNode(graph.KindWaste, nil)
	a := g.AddNode(graph.KindSorting, nil)
	b := g.AddNode(graph.KindRecycling, nil)
	processing := g.AddNode(graph.KindProcessing, map[string]graph.Value{
		"energy_source": graph.StringValue("Coal"),
	})
	g.AddEdge(waste.ID, a.ID, graph.RelSendsTo)
	g.AddEdge(a.ID, b.ID, graph.RelSendsTo)
	g.AddEdge(b.ID, processing.ID, graph.RelFeedsInto)

	first := Find(g)
	if len(first) != 2 {
		t.Fatalf("Expected 2 opportunities, got %d", len(first))
	}
	if first[0].Type != TypeCircularLoop || first[1].Type != TypeEnergyOptimization {
		t.Errorf("Expected shortcut before energy substitution, got %s then %s", first[0].Type, first[1].Type)
	}

	for i := 0; i < 5; i++ {
		again := Find(g)
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("Run %d produced different opportunity at %d: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}
