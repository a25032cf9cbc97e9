// Package mask assigns stable segmentation colors to trackable objects.
package mask

import (
	"fmt"

	"github.com/Faultbox/synthcap/internal/scene"
)

// Palette is the fixed ordered set of mask colors, red first. Colors are
// visually distinct and avoid black and white, which are reserved for
// background and would be ambiguous in a mask image.
var Palette = [][3]uint8{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 255, 0},
	{255, 0, 255},
	{0, 255, 255},
	{255, 128, 0},
	{128, 0, 255},
	{0, 128, 255},
	{128, 255, 0},
	{255, 0, 128},
	{0, 255, 128},
}

// Registry maps object names to their assigned mask colors for the
// lifetime of a run.
type Registry struct {
	colors map[string][3]uint8
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{colors: make(map[string][3]uint8)}
}

// Assign walks the objects in the given order, skips non-trackables, and
// assigns palette[i mod len(Palette)] to the i-th trackable. Call it once
// per run, before any capture; calling it again with the same ordering
// yields the same assignment. When the trackable count exceeds the palette
// size, colors repeat at indices congruent mod the palette size. That
// collision is accepted, documented behavior: such masks are ambiguous and
// the palette should be grown instead.
func (r *Registry) Assign(objects []*scene.Object) map[string][3]uint8 {
	i := 0
	for _, o := range objects {
		if !o.Trackable {
			continue
		}
		r.colors[o.Name] = Palette[i%len(Palette)]
		i++
	}
	return r.colors
}

// Color returns the color assigned to the named object.
func (r *Registry) Color(name string) ([3]uint8, bool) {
	c, ok := r.colors[name]
	return c, ok
}

// Hex returns the assigned color as an upper-case "RRGGBB" string.
func (r *Registry) Hex(name string) string {
	return HexColor(r.colors[name])
}

// HexColor encodes an RGB triple as upper-case "RRGGBB".
func HexColor(c [3]uint8) string {
	return fmt.Sprintf("%02X%02X%02X", c[0], c[1], c[2])
}
