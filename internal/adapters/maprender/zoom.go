// Package maprender provides the concrete map renderers. The native renderer
// keeps fractional spans; the tile renderer quantizes them to slippy-map zoom
// levels. Exactly one is selected at build time via the nativemap build tag,
// but both are always compiled.
package maprender

import "math"

const (
	minZoom     = 2
	maxZoom     = 18
	defaultZoom = 13 // city scale, used when the span is degenerate
)

// ZoomForDelta converts a longitude span in degrees to the nearest integer
// tile zoom level, clamped to the renderer's supported range.
func ZoomForDelta(lonDelta float64) int {
	if lonDelta <= 0 || math.IsNaN(lonDelta) || math.IsInf(lonDelta, 0) {
		return defaultZoom
	}
	z := int(math.Round(math.Log2(360 / lonDelta)))
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	return z
}

// DeltaForZoom converts an integer zoom level back to a longitude span.
func DeltaForZoom(zoom int) float64 {
	return 360 / math.Pow(2, float64(zoom))
}

// TileXY returns the slippy-map tile coordinates containing a point at a zoom
// level.
func TileXY(lat, lon float64, zoom int) (x, y int) {
	n := math.Pow(2, float64(zoom))
	x = int((lon + 180) / 360 * n)
	latRad := lat * math.Pi / 180
	y = int((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n)
	return x, y
}
