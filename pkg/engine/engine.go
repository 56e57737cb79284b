// Package engine exposes the circularity scoring engine's four operations
// over a per-process-id graph store: build a graph, export it for
// visualization, compute circularity metrics, and list optimization
// opportunities. The store is an explicit dependency so multiple isolated
// engines can coexist in one process.
package engine

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/carbonloop/metallca/pkg/circularity"
	"github.com/carbonloop/metallca/pkg/graph"
	"github.com/carbonloop/metallca/pkg/logging"
	"github.com/carbonloop/metallca/pkg/metrics"
	"github.com/carbonloop/metallca/pkg/optimize"
	"github.com/carbonloop/metallca/pkg/routes"
	"github.com/carbonloop/metallca/pkg/visualization"
)

// Engine coordinates the builder, analyzers, and exporter around one graph
// store. Builds replace a process graph atomically; analyzers read immutable
// snapshots and may run concurrently with each other.
type Engine struct {
	store    *graph.Store
	logger   logging.Logger
	registry *metrics.Registry
}

// New creates an engine over the given store. A nil logger or registry is
// replaced with a no-op logger or a fresh registry respectively.
func New(store *graph.Store, logger logging.Logger, registry *metrics.Registry) *Engine {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &Engine{
		store:    store,
		logger:   logger.With(logging.Component("engine")),
		registry: registry,
	}
}

// BuildGraph constructs the canonical topology for the route and parameters
// and installs it in the store, wholesale replacing any previous graph with
// the same process_id. The id is derived deterministically from the metal,
// route, and parameter set, so rebuilding with identical inputs replaces in
// place rather than accumulating graphs.
func (e *Engine) BuildGraph(route routes.Route, p routes.Params) (string, error) {
	start := time.Now()

	g, err := routes.Build(DeriveProcessID(route, p), route, p)
	if err != nil {
		e.registry.RecordGraphBuild(string(route), "error", time.Since(start))
		e.logger.Warn("graph build rejected",
			logging.String("route", string(route)),
			logging.Error(err),
		)
		return "", err
	}

	e.store.Replace(g)
	e.registry.RecordGraphBuild(string(route), "ok", time.Since(start))
	e.logger.Info("process graph built",
		logging.ProcessID(g.ProcessID()),
		logging.String("route", string(route)),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Duration("elapsed", time.Since(start)),
	)
	return g.ProcessID(), nil
}

// Visualization exports the stored graph for external rendering. A non-nil
// layout attaches canvas positions. Unknown ids fail with
// graph.ErrProcessNotFound.
func (e *Engine) Visualization(processID string, layout visualization.Layout) (*visualization.View, error) {
	g, err := e.store.Get(processID)
	if err != nil {
		e.registry.RecordAnalysis("visualization", "not_found")
		return nil, err
	}
	e.registry.RecordAnalysis("visualization", "ok")
	return visualization.ExportPositioned(g, layout), nil
}

// CircularityMetrics computes the circularity assessment of the stored graph.
// Unknown ids fail with graph.ErrProcessNotFound.
func (e *Engine) CircularityMetrics(processID string) (circularity.Metrics, error) {
	g, err := e.store.Get(processID)
	if err != nil {
		e.registry.RecordAnalysis("circularity", "not_found")
		return circularity.Metrics{}, err
	}

	m := circularity.Compute(g)
	e.registry.RecordAnalysis("circularity", "ok")
	e.registry.RecordCircularity(m.Score, m.LoopCount)
	e.logger.Debug("circularity computed",
		logging.ProcessID(processID),
		logging.Float64("score", m.Score),
		logging.Int("loops", m.LoopCount),
	)
	return m, nil
}

// Optimizations scans the stored graph for improvement opportunities.
// Unknown ids fail with graph.ErrProcessNotFound.
func (e *Engine) Optimizations(processID string) ([]optimize.Opportunity, error) {
	g, err := e.store.Get(processID)
	if err != nil {
		e.registry.RecordAnalysis("optimization", "not_found")
		return nil, err
	}

	opportunities := optimize.Find(g)
	e.registry.RecordAnalysis("optimization", "ok")
	counts := make(map[string]int)
	for _, o := range opportunities {
		counts[o.Type]++
	}
	for t, n := range counts {
		e.registry.RecordOpportunities(t, n)
	}
	return opportunities, nil
}

// DeleteGraph removes the stored graph for processID, if any.
func (e *Engine) DeleteGraph(processID string) {
	e.store.Delete(processID)
}

// DeriveProcessID builds the stable process_id for a route and parameter
// set: metal, route, and a hash of every parameter, matching the id format
// callers already persist.
func DeriveProcessID(route routes.Route, p routes.Params) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%g|%s|%s", p.MetalType, p.ProcessingLocation, p.ProductionCapacity, p.EnergySource, p.EndOfLifeOption)
	for _, opt := range []*float64{p.OreGrade, p.TransportDistance, p.EnergyConsumption, p.RecyclingRate} {
		if opt != nil {
			fmt.Fprintf(h, "|%g", *opt)
		} else {
			fmt.Fprint(h, "|-")
		}
	}
	return fmt.Sprintf("%s_%s_%x", p.MetalType, route, h.Sum64())
}
