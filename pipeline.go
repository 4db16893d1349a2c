package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
)

// ErrInvalidMetric is returned for an unknown length metric
var ErrInvalidMetric = errors.New("length metric must be planar or geodesic")

// PlanOptions tunes every stage of the route pipeline
type PlanOptions struct {
	Connectivity  Connectivity
	BridgeMaxDist float64
	MinBranchLen  int
	Tolerance     float64 // <= 0 estimates one from the routes
	NumAgents     int
	Metric        LengthMetric
	Skeletonize   bool         // thin the mask before building the graph
	Skeletonizer  Skeletonizer // nil uses ZhangSuenThinning
	Projection    Projection   // applied after PixelToWorld, nil for none
	DebugGraph    bool         // keep the bridged graph's edges in the plan
}

// DefaultPlanOptions returns the standard line-follow settings
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		Connectivity:  Conn8,
		BridgeMaxDist: DefaultBridgeMaxDist,
		MinBranchLen:  DefaultMinBranchLen,
		NumAgents:     3,
		Metric:        MetricPlanar,
	}
}

// AgentRoute is the single joined polyline flown by one agent
type AgentRoute struct {
	AgentID int            `json:"agentId"` // 1-based, sequential over kept agents
	Path    orb.LineString `json:"path"`
	Length  float64        `json:"length"`
}

// Plan is the full output of one pipeline run
type Plan struct {
	CreatedAt  time.Time        `json:"createdAt"`
	Meta       MaskMeta         `json:"meta"`
	NumNodes   int              `json:"numNodes"`
	NumEdges   int              `json:"numEdges"`
	NumBridges int              `json:"numBridges"`
	Trunk      Path             `json:"trunk"`
	Branches   []Path           `json:"branches"`
	Tolerance  float64          `json:"tolerance"`
	Routes     []orb.LineString `json:"routes"` // simplified trunk first, then branches
	Buckets    []AgentBucket    `json:"buckets"`
	Agents     []AgentRoute     `json:"agents"`
	GraphLines []orb.LineString `json:"graphLines,omitempty"`
}

// BuildPlan runs the whole pipeline: mask -> pixel graph -> bridged graph ->
// trunk and branches -> world routes -> simplified routes -> agent buckets ->
// joined agent routes. A mask without foreground is a valid input and
// produces an empty plan.
func BuildPlan(mask *Mask, meta MaskMeta, opts PlanOptions) (*Plan, error) {
	if !opts.Metric.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMetric, opts.Metric)
	}

	startTime := time.Now()
	plan := &Plan{
		CreatedAt: startTime,
		Meta:      meta,
		Trunk:     Path{},
		Branches:  []Path{},
		Routes:    []orb.LineString{},
		Buckets:   []AgentBucket{},
		Agents:    []AgentRoute{},
	}

	if mask != nil && opts.Skeletonize {
		thin := opts.Skeletonizer
		if thin == nil {
			thin = ZhangSuenThinning
		}
		before := mask.Count()
		mask = thin(mask)
		log.Printf("   🦴 Skeleton: %s -> %s pixels\n", humanize.Comma(int64(before)), humanize.Comma(int64(mask.Count())))
	}

	graph, err := BuildPixelGraph(mask, opts.Connectivity)
	if err != nil {
		return nil, fmt.Errorf("failed to build pixel graph: %w", err)
	}
	plan.NumNodes = graph.NumNodes()
	log.Printf("   Pixel graph: %s nodes, %s edges\n",
		humanize.Comma(int64(graph.NumNodes())), humanize.Comma(int64(graph.NumEdges())))

	if graph.NumNodes() == 0 {
		log.Println("   ℹ️  Mask has no foreground pixels, nothing to plan")
		return plan, nil
	}

	bridged := graph.Clone()
	plan.NumBridges = BridgeEndpoints(bridged, opts.BridgeMaxDist)
	plan.NumEdges = bridged.NumEdges()

	plan.Trunk = FindTrunk(bridged)
	plan.Branches = ExtractBranches(bridged, plan.Trunk, opts.MinBranchLen)
	log.Printf("   Trunk: %d pixels, branches: %d\n", len(plan.Trunk), len(plan.Branches))

	if opts.DebugGraph {
		plan.GraphLines = GraphLineStrings(bridged, meta, opts.Projection)
	}

	world := make([]orb.LineString, 0, len(plan.Branches)+1)
	if len(plan.Trunk) > 0 {
		world = append(world, PathToWorld(plan.Trunk, meta, opts.Projection))
	}
	for _, b := range plan.Branches {
		world = append(world, PathToWorld(b, meta, opts.Projection))
	}

	plan.Tolerance = opts.Tolerance
	if plan.Tolerance <= 0 {
		// A projection moves the routes out of the raster CRS
		tolMeta := meta
		if opts.Projection != nil {
			tolMeta.CRS = ""
		}
		plan.Tolerance = EstimateTolerance(world, tolMeta)
	}
	plan.Routes = SimplifyRoutes(world, plan.Tolerance)

	denseVertices, simpleVertices := 0, 0
	for i := range world {
		denseVertices += len(world[i])
		simpleVertices += len(plan.Routes[i])
	}
	log.Printf("   Simplified %d routes: %s -> %s vertices (tolerance %g)\n",
		len(plan.Routes), humanize.Comma(int64(denseVertices)), humanize.Comma(int64(simpleVertices)), plan.Tolerance)

	plan.Buckets = SplitRoutesForAgents(plan.Routes, opts.NumAgents, opts.Metric)
	plan.Agents = agentRoutes(plan.Buckets, opts.Metric)

	log.Printf("   ✅ %d agent routes in %s\n", len(plan.Agents), time.Since(startTime).Round(time.Millisecond))
	for _, a := range plan.Agents {
		log.Printf("      agent %d: %d waypoints, length %.2f\n", a.AgentID, len(a.Path), a.Length)
	}

	return plan, nil
}

// agentRoutes joins each bucket into one polyline. Buckets whose joined
// route has fewer than 2 points are dropped and the remaining agents are
// numbered 1..k in bucket order.
func agentRoutes(buckets []AgentBucket, metric LengthMetric) []AgentRoute {
	agents := make([]AgentRoute, 0, len(buckets))
	for _, bucket := range buckets {
		joined := JoinRoutesForAgent(bucket.Routes)
		if len(joined) < 2 {
			continue
		}
		agents = append(agents, AgentRoute{
			AgentID: len(agents) + 1,
			Path:    joined,
			Length:  metric.Length(joined),
		})
	}
	return agents
}
