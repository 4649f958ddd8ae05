// Package spatial provides the small amount of local geometry the service
// needs: summarizing a region of interest for map display. All per-pixel
// geometry work happens on the remote compute service.
package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// EarthRadiusMeters is Earth's mean radius.
const EarthRadiusMeters = 6371000.0

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Center returns the center of the geometry's bounding box, used as the
// default map focus for a detection run.
func Center(g *geojson.Geometry) Point {
	if g == nil {
		return Point{}
	}
	c := g.Geometry().Bound().Center()
	return Point{Lat: c.Lat(), Lon: c.Lon()}
}

// Bounds returns the geometry's bounding box as (minLat, minLon, maxLat,
// maxLon).
func Bounds(g *geojson.Geometry) (minLat, minLon, maxLat, maxLon float64) {
	if g == nil {
		return 0, 0, 0, 0
	}
	b := g.Geometry().Bound()
	return b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon()
}

// AreaHectares computes the spherical area of a polygonal geometry in
// hectares. Non-polygonal geometries have zero area. Holes are ignored; the
// value is informational, not used in detection math.
func AreaHectares(g *geojson.Geometry) float64 {
	if g == nil {
		return 0
	}

	var steradians float64
	for _, ring := range outerRings(g.Geometry()) {
		steradians += ringArea(ring)
	}
	return steradians * EarthRadiusMeters * EarthRadiusMeters / 10000.0
}

func outerRings(g orb.Geometry) []orb.Ring {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) > 0 {
			return []orb.Ring{geom[0]}
		}
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range geom {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return rings
	}
	return nil
}

func ringArea(ring orb.Ring) float64 {
	// GeoJSON rings repeat the first vertex at the end; s2 loops must not.
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return 0
	}

	points := make([]s2.Point, 0, len(ring))
	for _, p := range ring {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())))
	}

	loop := s2.LoopFromPoints(points)
	loop.Normalize() // winding order of drawn polygons is not guaranteed
	return loop.Area()
}
