package main

import (
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb/geojson"
)

// BuildDroneRoutesGeoJSON exports each agent route as a LineString feature
// tagged with its 1-based drone_id. Agents without a route are absent.
func BuildDroneRoutesGeoJSON(plan *Plan) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if plan == nil {
		return fc
	}

	for _, agent := range plan.Agents {
		if len(agent.Path) < 2 {
			continue
		}
		f := geojson.NewFeature(agent.Path)
		f.Properties["type"] = "drone_route"
		f.Properties["drone_id"] = agent.AgentID
		f.Properties["length"] = agent.Length
		fc.Append(f)
	}

	return fc
}

// SaveDroneRoutesGeoJSON writes the plan's agent routes to a GeoJSON file
func SaveDroneRoutesGeoJSON(plan *Plan, filename string) error {
	fc := BuildDroneRoutesGeoJSON(plan)

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal feature collection: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("🗺️  Wrote %d drone routes to %s\n", len(fc.Features), filename)
	return nil
}
