package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// MaskMeta places a raster in world coordinates. Pixel (row, col) covers the
// cell whose lower corner is (MinX + col*Resolution, MinY + row*Resolution).
type MaskMeta struct {
	MinX       float64 `json:"utm_min_x" yaml:"min_x"`
	MinY       float64 `json:"utm_min_y" yaml:"min_y"`
	Resolution float64 `json:"resolution" yaml:"resolution"` // world units per pixel
	CRS        string  `json:"crs,omitempty" yaml:"crs,omitempty"`
}

// PixelToWorld returns the world coordinate of a pixel's centre
func (m MaskMeta) PixelToWorld(n Node) orb.Point {
	res := m.Resolution
	if res <= 0 {
		res = 1
	}
	return orb.Point{
		m.MinX + float64(n.Col)*res + res/2,
		m.MinY + float64(n.Row)*res + res/2,
	}
}

// onGrid reports whether p is a pixel centre of this raster
func (m MaskMeta) onGrid(p orb.Point) bool {
	res := m.Resolution
	if res <= 0 {
		res = 1
	}
	isCentre := func(v, origin float64) bool {
		u := (v-origin)/res - 0.5
		return u > -1e-6 && math.Abs(u-math.Round(u)) < 1e-6
	}
	return isCentre(p.X(), m.MinX) && isCentre(p.Y(), m.MinY)
}

// LoadMaskMeta reads raster metadata written alongside a mask
func LoadMaskMeta(filename string) (MaskMeta, error) {
	var meta MaskMeta

	data, err := os.ReadFile(filename)
	if err != nil {
		return meta, fmt.Errorf("failed to read mask meta: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to unmarshal mask meta: %w", err)
	}
	return meta, nil
}

// Projection maps a raster-CRS coordinate into the output CRS. It must be pure.
type Projection func(orb.Point) orb.Point

// PathToWorld converts a pixel path into a world-space polyline
func PathToWorld(p Path, meta MaskMeta, proj Projection) orb.LineString {
	ls := make(orb.LineString, len(p))
	for i, n := range p {
		pt := meta.PixelToWorld(n)
		if proj != nil {
			pt = proj(pt)
		}
		ls[i] = pt
	}
	return ls
}

// LengthMetric selects how route lengths are measured for balancing
type LengthMetric string

const (
	// MetricPlanar is Euclidean length in world units
	MetricPlanar LengthMetric = "planar"
	// MetricGeodesic is haversine length in metres, for lon/lat routes
	MetricGeodesic LengthMetric = "geodesic"
)

// Valid reports whether m is a known metric. The empty metric means planar.
func (m LengthMetric) Valid() bool {
	return m == "" || m == MetricPlanar || m == MetricGeodesic
}

// Length measures a route. Routes with fewer than 2 points have length 0.
func (m LengthMetric) Length(ls orb.LineString) float64 {
	if len(ls) < 2 {
		return 0
	}
	if m == MetricGeodesic {
		return geo.Length(ls)
	}
	return planar.Length(ls)
}
