package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
)

// SavePlan serializes and saves the plan to a JSON file
func SavePlan(plan *Plan, filename string) error {
	log.Printf("💾 Saving route plan to %s...\n", filename)

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Plan saved (%d bytes)\n", len(data))
	return nil
}

// LoadPlan deserializes and loads a plan from a JSON file
func LoadPlan(filename string) (*Plan, error) {
	log.Printf("📂 Loading route plan from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var plan Plan
	err = json.Unmarshal(data, &plan)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	log.Printf("   ✅ Plan loaded: %d routes, %d agents\n", len(plan.Routes), len(plan.Agents))
	return &plan, nil
}

// GraphLineStrings returns each graph edge once, as a 2-point world segment, for visualization
func GraphLineStrings(g *PixelGraph, meta MaskMeta, proj Projection) []orb.LineString {
	lines := make([]orb.LineString, 0, g.NumEdges())

	seen := make(map[edgeKey]bool)
	for _, n := range g.Nodes() {
		for _, nb := range g.Neighbors(n) {
			key := makeEdgeKey(n, nb)
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, PathToWorld(Path{key.A, key.B}, meta, proj))
		}
	}

	return lines
}
