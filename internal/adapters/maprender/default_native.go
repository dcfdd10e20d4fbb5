//go:build nativemap

package maprender

import (
	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
)

// Default returns the renderer selected for this build: the native renderer.
// The tile URL is unused; native map views draw their own base layer.
func Default(initial domain.Region, tileURL string) ports.MapRenderer {
	return NewNative(initial)
}
