// Package optimize scans a process graph for structural and energy-source
// changes that would improve circularity or emissions. Scans run in node
// insertion order so that output ordering is stable and testable.
package optimize

import (
	"container/list"
	"fmt"
	"strings"

	"github.com/carbonloop/metallca/pkg/graph"
)

// MaxShortcutHops bounds the shortest-path search between waste and
// processing stages; pairs further apart than 5 hops are not considered
// shortcut candidates.
const MaxShortcutHops = 5

// Impact tiers are fixed labels, not computed values: structural shortcuts
// always rate High, energy substitutions Medium.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
)

// Opportunity types.
const (
	TypeCircularLoop       = "circular_loop"
	TypeEnergyOptimization = "energy_optimization"
)

// Opportunity is one detected optimization, either a waste-to-processing
// shortcut or an energy-source substitution.
type Opportunity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      Impact `json:"impact"`

	// Shortcut details
	CurrentSteps   int `json:"current_steps,omitempty"`
	OptimizedSteps int `json:"optimized_steps,omitempty"`

	// Energy details
	CurrentEnergy      string `json:"current_energy,omitempty"`
	SuggestedEnergy    string `json:"suggested_energy,omitempty"`
	PotentialReduction string `json:"potential_reduction,omitempty"`
}

// Find returns all optimization opportunities in g, shortcuts first, then
// energy substitutions. The graph is only read.
func Find(g *graph.Graph) []Opportunity {
	if g == nil {
		return nil
	}
	opportunities := findShortcuts(g)
	return append(opportunities, findEnergySubstitutions(g)...)
}

// findShortcuts looks for waste streams whose shortest route back to a
// processing stage is longer than 2 hops: those flows could be
// short-circuited with a direct connection. Pairs already within 2 hops, or
// unreachable within MaxShortcutHops, are not reported.
func findShortcuts(g *graph.Graph) []Opportunity {
	var out []Opportunity
	for _, waste := range g.NodesOfKind(graph.KindWaste) {
		for _, processing := range g.NodesOfKind(graph.KindProcessing) {
			length, found := shortestPathLength(g, waste.ID, processing.ID, MaxShortcutHops)
			if !found || length <= 2 {
				continue
			}
			out = append(out, Opportunity{
				Type: TypeCircularLoop,
				Description: fmt.Sprintf("Connect %s directly to %s",
					nodeLabel(waste, "waste"), nodeLabel(processing, "processing")),
				Impact:         ImpactHigh,
				CurrentSteps:   length,
				OptimizedSteps: 1,
			})
		}
	}
	return out
}

// findEnergySubstitutions flags every node whose energy source mentions coal
// or grid power (case-insensitive substring match).
func findEnergySubstitutions(g *graph.Graph) []Opportunity {
	var out []Opportunity
	for _, n := range g.Nodes() {
		source := n.StringAttr("energy_source")
		if source == "" {
			continue
		}
		lower := strings.ToLower(source)
		if !strings.Contains(lower, "coal") && !strings.Contains(lower, "grid") {
			continue
		}
		out = append(out, Opportunity{
			Type:               TypeEnergyOptimization,
			Description:        fmt.Sprintf("Switch %s to renewable energy", nodeLabel(n, "process")),
			Impact:             ImpactMedium,
			CurrentEnergy:      source,
			SuggestedEnergy:    "Solar + Wind",
			PotentialReduction: "25-40%",
		})
	}
	return out
}

// shortestPathLength runs an unweighted BFS from start, bounded to maxHops,
// and reports the hop count of the shortest directed path to end.
func shortestPathLength(g *graph.Graph, start, end uint64, maxHops int) (int, bool) {
	if start == end {
		return 0, true
	}

	distances := map[uint64]int{start: 0}
	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		currentID := queue.Remove(queue.Front()).(uint64)
		currentDist := distances[currentID]
		if currentDist >= maxHops {
			continue
		}

		for _, edge := range g.OutgoingEdges(currentID) {
			if edge.To == end {
				return currentDist + 1, true
			}
			if _, seen := distances[edge.To]; !seen {
				distances[edge.To] = currentDist + 1
				queue.PushBack(edge.To)
			}
		}
	}

	return 0, false
}

// nodeLabel names a node for operator-facing descriptions: its type
// attribute when present, otherwise the supplied fallback.
func nodeLabel(n *graph.Node, fallback string) string {
	if t := n.StringAttr("type"); t != "" {
		return t
	}
	return fallback
}
