package main

import (
	"runtime"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"golang.org/x/sync/errgroup"
)

// SimplifyRoute reduces a dense route with Douglas-Peucker, keeping both
// endpoints. Topology is not preserved. Inputs shorter than 3 points, and
// results that would collapse below 2 points, come back unchanged.
func SimplifyRoute(coords orb.LineString, tol float64) orb.LineString {
	if len(coords) < 3 {
		return coords
	}

	// The simplifier works in place
	simplified := simplify.DouglasPeucker(tol).LineString(coords.Clone())
	if len(simplified) < 2 {
		return coords
	}
	return simplified
}

// SimplifyRoutes simplifies every route independently, in parallel.
// Output order matches input order.
func SimplifyRoutes(routes []orb.LineString, tol float64) []orb.LineString {
	simplified := make([]orb.LineString, len(routes))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, route := range routes {
		eg.Go(func() error {
			simplified[i] = SimplifyRoute(route, tol)
			return nil
		})
	}
	_ = eg.Wait()

	return simplified
}

// geographicCRS lists raster CRS names whose units are degrees
var geographicCRS = map[string]bool{
	"EPSG:4326": true,
	"EPSG:4258": true,
	"WGS84":     true,
	"CRS84":     true,
	"OGC:CRS84": true,
}

// EstimateTolerance suggests a simplification tolerance from the coordinate
// system and the total vertex count. Conservative, so branches keep their shape.
//
// The base is 2e-5 degrees for a geographic meta.CRS and one pixel
// (meta.Resolution) for any other CRS. Without a CRS, routes still on the
// raster grid are in raster units; otherwise the coordinate range decides.
func EstimateTolerance(routes []orb.LineString, meta MaskMeta) float64 {
	var sample *orb.Point
	vertexCount := 0
	for _, r := range routes {
		if len(r) > 0 && sample == nil {
			p := r[0]
			sample = &p
		}
		vertexCount += len(r)
	}

	pixel := meta.Resolution
	if pixel <= 0 {
		pixel = 1.0
	}

	// 0.00002 degrees ≈ 2.2 meters, the value used for lon/lat output
	const degrees = 2e-5

	base := pixel
	switch {
	case meta.CRS != "":
		if geographicCRS[strings.ToUpper(strings.TrimSpace(meta.CRS))] {
			base = degrees
		}
	case sample == nil, meta.onGrid(*sample):
		// raster units
	case sample.X() >= -180 && sample.X() <= 180 && sample.Y() >= -90 && sample.Y() <= 90:
		base = degrees
	}

	if vertexCount > 50000 {
		return base * 5.0
	} else if vertexCount > 20000 {
		return base * 3.0
	} else if vertexCount > 5000 {
		return base * 2.0
	} else if vertexCount > 1000 {
		return base * 1.5
	}
	return base
}
