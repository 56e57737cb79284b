// Package circularity scores how closed-loop a process graph is. The score
// rewards material loops and recycling efficiency and penalizes waste
// streams, clamped to [0, 100] so out-of-range arithmetic never surfaces to
// callers.
package circularity

import (
	"math"

	"github.com/carbonloop/metallca/pkg/graph"
)

// MaxLoopLength bounds the cycle search: paths longer than 10 edges are
// never considered loops. Combined with the visited-edge set this keeps the
// DFS finite on graphs of any size.
const MaxLoopLength = 10

// Metrics is the circularity assessment of one process graph.
type Metrics struct {
	Score               float64 `json:"circularity_score"`
	LoopCount           int     `json:"loop_count"`
	AvgLoopLength       float64 `json:"avg_loop_length"`
	RecyclingEfficiency float64 `json:"recycling_efficiency"`
	WasteStreams        int     `json:"waste_streams"`
}

// Compute derives the circularity metrics for g. The graph is only read.
// A graph with zero nodes is a valid, uninteresting input: every field is 0.
func Compute(g *graph.Graph) Metrics {
	if g == nil || g.NodeCount() == 0 {
		return Metrics{}
	}

	loops := findLoops(g)

	var m Metrics
	m.LoopCount = len(loops)
	if len(loops) > 0 {
		total := 0
		for _, l := range loops {
			total += len(l)
		}
		m.AvgLoopLength = float64(total) / float64(len(loops))
	}

	m.RecyclingEfficiency = recyclingEfficiency(g)
	m.WasteStreams = len(g.NodesOfKind(graph.KindWaste))

	m.Score = CompositeScore(m.LoopCount, m.RecyclingEfficiency, m.WasteStreams)
	return m
}

// CompositeScore folds loop count, recycling efficiency, and waste-stream
// count into the 0-100 circularity score:
//
//	loopScore = min(100, loopCount * 10)
//	score     = clamp(0, 100, loopScore*0.4 + efficiency*0.5 - wasteStreams*5)
func CompositeScore(loopCount int, recyclingEfficiency float64, wasteStreams int) float64 {
	loopScore := math.Min(100, float64(loopCount)*10)
	wastePenalty := float64(wasteStreams) * 5
	score := loopScore*0.4 + recyclingEfficiency*0.5 - wastePenalty
	return math.Max(0, math.Min(100, score))
}

// recyclingEfficiency averages the rate attribute across Recycling and
// Reprocessing nodes, or 0 when the graph has neither.
func recyclingEfficiency(g *graph.Graph) float64 {
	var sum float64
	var count int
	for _, n := range g.Nodes() {
		if n.Kind != graph.KindRecycling && n.Kind != graph.KindReprocessing {
			continue
		}
		sum += n.FloatAttr("rate")
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Loop is a simple directed cycle, recorded as its edge sequence.
type Loop []*graph.Edge

// findLoops enumerates every simple directed cycle of 1..MaxLoopLength edges
// that contains at least one FEEDS_INTO or FEEDS_BACK edge.
//
// Each cycle is counted exactly once: the DFS is anchored at every node in
// turn but only expands through nodes with an id no smaller than the anchor,
// so a cycle is discovered solely from its minimum-id node. Paths are simple
// (no node revisited except the anchor, no edge reused), which also resolves
// the ambiguity around repeated-edge paths by excluding them.
func findLoops(g *graph.Graph) []Loop {
	var loops []Loop
	for _, anchor := range g.Nodes() {
		w := &loopWalker{
			g:           g,
			anchor:      anchor.ID,
			usedEdges:   make(map[uint64]bool),
			onPath:      map[uint64]bool{anchor.ID: true},
			currentPath: make([]*graph.Edge, 0, MaxLoopLength),
		}
		w.walk(anchor.ID)
		loops = append(loops, w.found...)
	}
	return loops
}

// loopWalker carries the state of one anchored DFS.
type loopWalker struct {
	g           *graph.Graph
	anchor      uint64
	usedEdges   map[uint64]bool
	onPath      map[uint64]bool
	currentPath []*graph.Edge
	found       []Loop
}

func (w *loopWalker) walk(nodeID uint64) {
	if len(w.currentPath) >= MaxLoopLength {
		return
	}

	for _, edge := range w.g.OutgoingEdges(nodeID) {
		if w.usedEdges[edge.ID] {
			continue
		}

		if edge.To == w.anchor {
			// Closed a cycle back to the anchor.
			w.currentPath = append(w.currentPath, edge)
			if hasRecyclingEdge(w.currentPath) {
				loop := make(Loop, len(w.currentPath))
				copy(loop, w.currentPath)
				w.found = append(w.found, loop)
			}
			w.currentPath = w.currentPath[:len(w.currentPath)-1]
			continue
		}

		// Only the minimum-id node of a cycle may anchor it, and simple
		// paths never revisit an intermediate node.
		if edge.To < w.anchor || w.onPath[edge.To] {
			continue
		}

		w.usedEdges[edge.ID] = true
		w.onPath[edge.To] = true
		w.currentPath = append(w.currentPath, edge)

		w.walk(edge.To)

		w.currentPath = w.currentPath[:len(w.currentPath)-1]
		delete(w.onPath, edge.To)
		delete(w.usedEdges, edge.ID)
	}
}

func hasRecyclingEdge(path []*graph.Edge) bool {
	for _, e := range path {
		if e.Relation.IsRecyclingRelation() {
			return true
		}
	}
	return false
}
