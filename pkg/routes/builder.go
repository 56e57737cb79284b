// Package routes builds canonical process graphs for the two metal
// production pathways. A build is a pure function of the route and the
// parameter set: the same inputs always yield the same topology, with
// supplied parameters substituted into node attributes and documented
// defaults filling the gaps.
package routes

import (
	"github.com/carbonloop/metallca/pkg/graph"
)

// Build instantiates the fixed topology for the given route into a fresh
// graph under processID. Missing required parameters fail with a
// *ValidationError; edge wiring failures surface as *graph.IntegrityError
// (a builder bug, never caller-recoverable).
func Build(processID string, route Route, p Params) (*graph.Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch route {
	case RoutePrimary:
		return buildPrimary(processID, p)
	case RouteRecycled:
		return buildRecycled(processID, p)
	default:
		return nil, &ValidationError{Field: "process_route", Reason: "must be Primary or Recycled"}
	}
}

// link is a pending edge between two nodes of the topology under construction.
type link struct {
	from, to uint64
	rel      graph.Relation
}

// buildPrimary wires the virgin-ore pathway:
// Mine → Transport → Processing → Product → EndOfLife, with Processing also
// generating Waste. A positive recycling rate attaches a Recycling node that
// closes the Product→EndOfLife→Recycling→Product loop.
func buildPrimary(processID string, p Params) (*graph.Graph, error) {
	g := graph.New(processID)
	recyclingRate := p.recyclingRate(RoutePrimary)

	mine := g.AddNode(graph.KindMine, map[string]graph.Value{
		"name":      graph.StringValue(p.MetalType + "_mine"),
		"location":  graph.StringValue(p.ProcessingLocation),
		"ore_grade": graph.FloatValue(p.oreGrade()),
	})
	transport := g.AddNode(graph.KindTransport, map[string]graph.Value{
		"distance": graph.FloatValue(p.transportDistance()),
		"mode":     graph.StringValue("truck"),
	})
	processing := g.AddNode(graph.KindProcessing, map[string]graph.Value{
		"type":               graph.StringValue("smelting"),
		"metal":              graph.StringValue(p.MetalType),
		"capacity":           graph.FloatValue(p.ProductionCapacity),
		"energy_source":      graph.StringValue(p.EnergySource),
		"energy_consumption": graph.FloatValue(p.energyConsumption(RoutePrimary)),
		"location":           graph.StringValue(p.ProcessingLocation),
	})
	product := g.AddNode(graph.KindProduct, map[string]graph.Value{
		"metal": graph.StringValue(p.MetalType),
		"route": graph.StringValue("primary"),
	})
	waste := g.AddNode(graph.KindWaste, map[string]graph.Value{
		"type":      graph.StringValue("mining_waste"),
		"treatment": graph.StringValue("landfill"),
	})
	eol := g.AddNode(graph.KindEndOfLife, map[string]graph.Value{
		"option":         graph.StringValue(p.EndOfLifeOption),
		"recycling_rate": graph.FloatValue(recyclingRate),
	})

	wiring := []link{
		{mine.ID, transport.ID, graph.RelTransports},
		{transport.ID, processing.ID, graph.RelDeliversTo},
		{processing.ID, product.ID, graph.RelProduces},
		{processing.ID, waste.ID, graph.RelGenerates},
		{product.ID, eol.ID, graph.RelEndsAs},
	}

	if recyclingRate > 0 {
		recycling := g.AddNode(graph.KindRecycling, map[string]graph.Value{
			"rate": graph.FloatValue(recyclingRate),
		})
		wiring = append(wiring,
			link{eol.ID, recycling.ID, graph.RelFeedsInto},
			link{recycling.ID, product.ID, graph.RelProduces},
		)
	}

	for _, w := range wiring {
		if _, err := g.AddEdge(w.from, w.to, w.rel); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// buildRecycled wires the scrap-based pathway, an inherent loop of length 6:
// Scrap → Collection → Sorting → Reprocessing → Product → EndOfLife → Scrap.
func buildRecycled(processID string, p Params) (*graph.Graph, error) {
	g := graph.New(processID)
	recyclingRate := p.recyclingRate(RouteRecycled)

	scrap := g.AddNode(graph.KindScrap, map[string]graph.Value{
		"metal":   graph.StringValue(p.MetalType),
		"quality": graph.StringValue("high"),
	})
	collection := g.AddNode(graph.KindCollection, map[string]graph.Value{
		"efficiency": graph.FloatValue(recyclingRate),
	})
	sorting := g.AddNode(graph.KindSorting, map[string]graph.Value{
		"purity": graph.FloatValue(0.95),
	})
	reprocessing := g.AddNode(graph.KindReprocessing, map[string]graph.Value{
		"type":               graph.StringValue("remelting"),
		"metal":              graph.StringValue(p.MetalType),
		"capacity":           graph.FloatValue(p.ProductionCapacity),
		"energy_source":      graph.StringValue(p.EnergySource),
		"energy_consumption": graph.FloatValue(p.energyConsumption(RouteRecycled)),
		"location":           graph.StringValue(p.ProcessingLocation),
		"rate":               graph.FloatValue(recyclingRate),
	})
	product := g.AddNode(graph.KindProduct, map[string]graph.Value{
		"metal":   graph.StringValue(p.MetalType),
		"route":   graph.StringValue("recycled"),
		"quality": graph.StringValue("secondary"),
	})
	eol := g.AddNode(graph.KindEndOfLife, map[string]graph.Value{
		"option":         graph.StringValue(p.EndOfLifeOption),
		"recycling_rate": graph.FloatValue(recyclingRate),
	})

	wiring := []link{
		{scrap.ID, collection.ID, graph.RelCollectedBy},
		{collection.ID, sorting.ID, graph.RelSendsTo},
		{sorting.ID, reprocessing.ID, graph.RelFeedsInto},
		{reprocessing.ID, product.ID, graph.RelProduces},
		{product.ID, eol.ID, graph.RelEndsAs},
		{eol.ID, scrap.ID, graph.RelFeedsBack},
	}

	for _, w := range wiring {
		if _, err := g.AddEdge(w.from, w.to, w.rel); err != nil {
			return nil, err
		}
	}
	return g, nil
}
