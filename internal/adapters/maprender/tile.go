package maprender

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// recenterEpsilon is the distance in degrees (~10m) under which a gesture
// ending where a programmatic re-center just landed is treated as the echo of
// that re-center, not user movement.
const recenterEpsilon = 0.0001

// Tile renders on a raster tile grid. Spans are quantized to integer zoom
// levels, so the region a caller sets is normalized before it is shown.
type Tile struct {
	tileURL string

	mu       sync.Mutex
	frame    domain.MapFrame
	pending  *domain.GeoPoint // last programmatic re-center target
	onChange func(domain.Region)
}

// NewTile creates a Tile renderer showing initial. tileURL is a template like
// "https://tile.openstreetmap.org/{z}/{x}/{y}.png".
func NewTile(initial domain.Region, tileURL string) *Tile {
	t := &Tile{tileURL: tileURL}
	t.frame = domain.MapFrame{Region: t.normalize(initial)}
	return t
}

func (t *Tile) Name() string { return "tile" }

// normalize snaps a region's spans to the nearest zoom level, preserving the
// center.
func (t *Tile) normalize(r domain.Region) domain.Region {
	zoom := ZoomForDelta(r.LongitudeDelta)
	delta := DeltaForZoom(zoom)
	r.LongitudeDelta = delta
	r.LatitudeDelta = delta
	return r
}

// SetFrame normalizes and adopts the frame. The re-center target is recorded
// so the next gesture ending on it is recognized as an echo.
func (t *Tile) SetFrame(f domain.MapFrame) {
	f.Region = t.normalize(f.Region)
	center := f.Region.Center()

	t.mu.Lock()
	moved := math.Abs(center.Lat-t.frame.Region.Latitude) > recenterEpsilon ||
		math.Abs(center.Lon-t.frame.Region.Longitude) > recenterEpsilon
	t.frame = f
	if moved {
		t.pending = &center
	}
	t.mu.Unlock()
}

func (t *Tile) Frame() domain.MapFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// CompleteGesture normalizes and adopts the gesture's end region. A gesture
// that ends within recenterEpsilon of the last programmatic re-center target
// is its echo: it is adopted silently and the callback is not fired.
func (t *Tile) CompleteGesture(region domain.Region) domain.Region {
	region = t.normalize(region)

	t.mu.Lock()
	echo := t.pending != nil &&
		math.Abs(region.Latitude-t.pending.Lat) <= recenterEpsilon &&
		math.Abs(region.Longitude-t.pending.Lon) <= recenterEpsilon
	t.frame.Region = region
	t.pending = nil
	fn := t.onChange
	t.mu.Unlock()

	if !echo && fn != nil {
		fn(region)
	}
	return region
}

func (t *Tile) OnRegionChange(fn func(domain.Region)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// CenterTileURL resolves the tile template for the tile under the current
// center, for UI shells that prefetch the visible layer.
func (t *Tile) CenterTileURL() string {
	t.mu.Lock()
	r := t.frame.Region
	t.mu.Unlock()

	zoom := ZoomForDelta(r.LongitudeDelta)
	x, y := TileXY(r.Latitude, r.Longitude, zoom)

	url := strings.ReplaceAll(t.tileURL, "{z}", strconv.Itoa(zoom))
	url = strings.ReplaceAll(url, "{x}", strconv.Itoa(x))
	url = strings.ReplaceAll(url, "{y}", strconv.Itoa(y))
	return url
}
