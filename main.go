package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"sync"
)

// BuildRoutesRequest is the body of POST /buildRoutes.
// Zero values fall back to the configured planner defaults.
type BuildRoutesRequest struct {
	Mask          [][]int      `json:"mask"`
	Meta          *MaskMeta    `json:"meta,omitempty"`
	NumAgents     int          `json:"numAgents"`
	Connectivity  int          `json:"connectivity,omitempty"`
	BridgeMaxDist float64      `json:"bridgeMaxDist,omitempty"`
	MinBranchLen  int          `json:"minBranchLen,omitempty"`
	Tolerance     float64      `json:"tolerance,omitempty"`
	Skeletonize   *bool        `json:"skeletonize,omitempty"`
	Metric        LengthMetric `json:"metric,omitempty"`
	DebugGraph    bool         `json:"debugGraph,omitempty"`
	SaveToFile    bool         `json:"saveToFile,omitempty"`
}

var (
	appConfig   = DefaultConfig()
	currentPlan *Plan
	planMutex   sync.RWMutex
)

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to encode response: %v\n", err)
	}
}

// planOptionsFor merges a request over the configured defaults
func planOptionsFor(req *BuildRoutesRequest) PlanOptions {
	opts := appConfig.PlanOptions()
	if req.NumAgents != 0 {
		opts.NumAgents = req.NumAgents
	}
	if req.Connectivity != 0 {
		opts.Connectivity = Connectivity(req.Connectivity)
	}
	if req.BridgeMaxDist != 0 {
		opts.BridgeMaxDist = req.BridgeMaxDist
	}
	if req.MinBranchLen != 0 {
		opts.MinBranchLen = req.MinBranchLen
	}
	if req.Tolerance != 0 {
		opts.Tolerance = req.Tolerance
	}
	if req.Skeletonize != nil {
		opts.Skeletonize = *req.Skeletonize
	}
	if req.Metric != "" {
		opts.Metric = req.Metric
	}
	opts.DebugGraph = req.DebugGraph
	return opts
}

// POST /buildRoutes - Extract routes from a mask and split them across agents
func buildRoutesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🛣️  Build routes request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mask, err := MaskFromRows(req.Mask)
	if err != nil {
		log.Printf("❌ Invalid mask: %v\n", err)
		http.Error(w, "Invalid mask: "+err.Error(), http.StatusBadRequest)
		return
	}

	meta := appConfig.Raster
	if req.Meta != nil {
		meta = *req.Meta
	}
	opts := planOptionsFor(&req)

	log.Printf("   Mask: %dx%d\n", mask.Height, mask.Width)
	log.Printf("   Agents: %d, connectivity: %d\n", opts.NumAgents, int(opts.Connectivity))

	plan, err := BuildPlan(mask, meta, opts)
	if err != nil {
		log.Printf("❌ Failed to build plan: %v\n", err)
		http.Error(w, "Failed to build plan: "+err.Error(), http.StatusBadRequest)
		return
	}

	planMutex.Lock()
	currentPlan = plan
	planMutex.Unlock()

	if req.SaveToFile {
		if err := SavePlan(plan, appConfig.Server.PlanFile); err != nil {
			log.Printf("⚠️  Failed to save plan: %v\n", err)
		}
	}

	log.Println("========================================")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"numNodes":    plan.NumNodes,
		"numEdges":    plan.NumEdges,
		"numBridges":  plan.NumBridges,
		"trunkPixels": len(plan.Trunk),
		"numBranches": len(plan.Branches),
		"numRoutes":   len(plan.Routes),
		"tolerance":   plan.Tolerance,
		"agents":      plan.Agents,
		"routes":      BuildDroneRoutesGeoJSON(plan),
	})
}

// GET /routes - Current agent routes as a GeoJSON FeatureCollection
func routesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	planMutex.RLock()
	plan := currentPlan
	planMutex.RUnlock()

	if plan == nil {
		http.Error(w, "No route plan. Call /buildRoutes first", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, BuildDroneRoutesGeoJSON(plan))
}

// GET /graphLines - Bridged pixel graph edges for visualization
func graphLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	planMutex.RLock()
	plan := currentPlan
	planMutex.RUnlock()

	if plan == nil {
		http.Error(w, "No route plan. Call /buildRoutes first", http.StatusNotFound)
		return
	}
	if plan.GraphLines == nil {
		http.Error(w, "Graph lines not captured. Rebuild with debugGraph:true", http.StatusNotFound)
		return
	}

	log.Printf("📊 Returning %d graph segments\n", len(plan.GraphLines))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"lines":    plan.GraphLines,
		"numNodes": plan.NumNodes,
		"numEdges": len(plan.GraphLines),
	})
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	planMutex.RLock()
	plan := currentPlan
	planMutex.RUnlock()

	status := "ready"
	numRoutes, numAgents := 0, 0
	if plan == nil {
		status = "waiting for route plan"
	} else {
		numRoutes = len(plan.Routes)
		numAgents = len(plan.Agents)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"hasPlan":   plan != nil,
		"numRoutes": numRoutes,
		"numAgents": numAgents,
	})
}

func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/buildRoutes", corsMiddleware(buildRoutesHandler))
	mux.HandleFunc("/routes", corsMiddleware(routesHandler))
	mux.HandleFunc("/graphLines", corsMiddleware(graphLinesHandler))
	mux.HandleFunc("/health", corsMiddleware(healthHandler))
	return mux
}

// runBatch plans routes for a single mask file and writes them as GeoJSON
func runBatch(maskPath, metaPath, outPath string) error {
	mask, err := LoadMask(maskPath)
	if err != nil {
		return err
	}

	meta := appConfig.Raster
	if metaPath != "" {
		if meta, err = LoadMaskMeta(metaPath); err != nil {
			return err
		}
	}

	log.Printf("🛣️  Planning routes for %s (%dx%d)\n", maskPath, mask.Height, mask.Width)
	plan, err := BuildPlan(mask, meta, appConfig.PlanOptions())
	if err != nil {
		return err
	}

	return SaveDroneRoutesGeoJSON(plan, outPath)
}

func main() {
	configPath := flag.String("config", "", "Config file path (default: search $LINEFOLLOW_CONFIG, ./linefollow.yaml)")
	maskPath := flag.String("mask", "", "Mask file (.png or .json); plans once and exits instead of serving")
	metaPath := flag.String("meta", "", "Mask metadata JSON (utm_min_x, utm_min_y, resolution)")
	outPath := flag.String("out", "drone_routes.geojson", "GeoJSON output path in batch mode")
	agents := flag.Int("agents", 0, "Number of agents (overrides config)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	var (
		cfg    *Config
		source string
		err    error
	)
	if *configPath != "" {
		cfg, source, err = LoadFromPath(*configPath)
	} else {
		cfg, source, err = Load()
	}
	if err != nil {
		log.Fatalf("❌ Failed to load config %s: %v", source, err)
	}
	if *agents != 0 {
		cfg.Planner.Agents = *agents
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	appConfig = cfg

	closer := cfg.Log.SetLogger()
	defer closer.Close()

	if source != "" {
		log.Printf("Loaded config from %s\n", source)
	}

	if *maskPath != "" {
		if err := runBatch(*maskPath, *metaPath, *outPath); err != nil {
			log.Printf("❌ %v\n", err)
			closer.Close()
			os.Exit(1)
		}
		return
	}

	log.Println("========================================")
	log.Println("🚀 Line-Follow Route Planner Server")
	log.Println("========================================")
	log.Println("Checking for existing route plan file...")

	if plan, err := LoadPlan(cfg.Server.PlanFile); err == nil {
		planMutex.Lock()
		currentPlan = plan
		planMutex.Unlock()
		log.Printf("✅ Loaded existing route plan from file\n")
	} else {
		log.Println("ℹ️  No existing plan found (this is normal on first run)")
		log.Println("   Call /buildRoutes to create one")
	}
	log.Println("")

	log.Printf("Server starting on %s\n", cfg.Server.Addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /buildRoutes   - Extract routes from a mask and split across agents")
	log.Println("  GET  /routes        - Current agent routes as GeoJSON")
	log.Println("  GET  /graphLines    - Pixel graph edges for visualization")
	log.Println("  GET  /health        - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(cfg.Server.Addr, newServeMux()); err != nil {
		log.Fatal(err)
	}
}
