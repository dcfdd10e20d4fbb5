//go:build !nativemap

package maprender

import (
	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
)

// Default returns the renderer selected for this build: the tile renderer.
func Default(initial domain.Region, tileURL string) ports.MapRenderer {
	return NewTile(initial, tileURL)
}
