package maprender

import (
	"sync"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// Native renders with exact fractional spans: the region a caller sets is the
// region it gets back. Matches platform map views that animate to arbitrary
// camera positions.
type Native struct {
	mu       sync.Mutex
	frame    domain.MapFrame
	onChange func(domain.Region)
}

// NewNative creates a Native renderer showing initial.
func NewNative(initial domain.Region) *Native {
	return &Native{frame: domain.MapFrame{Region: initial}}
}

func (r *Native) Name() string { return "native" }

// SetFrame adopts the frame as-is. Programmatic updates never fire the
// region-change callback.
func (r *Native) SetFrame(f domain.MapFrame) {
	r.mu.Lock()
	r.frame = f
	r.mu.Unlock()
}

func (r *Native) Frame() domain.MapFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// CompleteGesture adopts the gesture's end region verbatim and fires the
// callback once.
func (r *Native) CompleteGesture(region domain.Region) domain.Region {
	r.mu.Lock()
	r.frame.Region = region
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn(region)
	}
	return region
}

func (r *Native) OnRegionChange(fn func(domain.Region)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}
