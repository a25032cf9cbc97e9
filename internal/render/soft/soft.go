// Package soft is a software reference renderer. It implements the
// viewport and material-system collaborator interfaces over an in-memory
// RGBA buffer, so capture runs and tests work without a GPU or display.
// Objects are drawn as depth-sorted flat billboards; it is a stand-in for
// a real engine, not a rasterizer.
package soft

import (
	"context"
	"errors"
	gomath "math"
	"sort"

	"github.com/Faultbox/synthcap/internal/scene"
	"github.com/Faultbox/synthcap/pkg/math"
)

const (
	fovY = 60.0 * gomath.Pi / 180.0
	near = 0.1
	far  = 100.0

	trackableHalfExtent = 0.5
	backdropHalfExtent  = 8.0
)

var background = [3]uint8{24, 26, 32}

// Renderer renders the world into an internal pixel buffer on every
// composition cycle.
type Renderer struct {
	world     *scene.World
	overrides map[*scene.Object]*scene.Material

	width, height int
	pix           []byte // RGBA, top-left origin
	composed      bool
}

// New creates a renderer over the given world.
func New(world *scene.World) *Renderer {
	return &Renderer{
		world:     world,
		overrides: make(map[*scene.Object]*scene.Material),
	}
}

// SetOutputSize resizes the output buffer. The next snapshot requires a new
// composition cycle.
func (r *Renderer) SetOutputSize(w, h int) {
	r.width, r.height = w, h
	r.pix = make([]byte, w*h*4)
	r.composed = false
}

// Override returns the object's current material override, nil if none.
func (r *Renderer) Override(o *scene.Object) *scene.Material {
	return r.overrides[o]
}

// SetOverride installs or clears (nil) an object's material override.
// Changing materials invalidates the current composition.
func (r *Renderer) SetOverride(o *scene.Object, m *scene.Material) {
	if m == nil {
		delete(r.overrides, o)
	} else {
		r.overrides[o] = m
	}
	r.composed = false
}

// AwaitCompositionCycle runs one full composition: the buffer reflects all
// scene mutations made before the call.
func (r *Renderer) AwaitCompositionCycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.pix == nil {
		return errors.New("soft: output size not set")
	}
	r.compose()
	r.composed = true
	return nil
}

// Snapshot returns a copy of the composed pixel buffer. Calling it before
// a composition cycle has reflected the latest material changes is a
// sequencing bug in the caller and is reported as an error.
func (r *Renderer) Snapshot() ([]byte, error) {
	if !r.composed {
		return nil, errors.New("soft: snapshot before composition cycle")
	}
	out := make([]byte, len(r.pix))
	copy(out, r.pix)
	return out, nil
}

type sprite struct {
	cx, cy   int
	halfPx   int
	distance float64
	color    [3]uint8
}

func (r *Renderer) compose() {
	for i := 0; i < len(r.pix); i += 4 {
		r.pix[i] = background[0]
		r.pix[i+1] = background[1]
		r.pix[i+2] = background[2]
		r.pix[i+3] = 255
	}

	cam := r.world.Camera
	aspect := float64(r.width) / float64(r.height)
	viewProj := math.Perspective(fovY, aspect, near, far).Mul(cam.Basis.ViewMatrix(cam.Position))

	var sprites []sprite
	for _, o := range r.world.Objects {
		half := trackableHalfExtent
		if !o.Trackable {
			half = backdropHalfExtent
		}
		s, ok := r.project(viewProj, o, half)
		if !ok {
			continue
		}
		sprites = append(sprites, s)
	}

	// Painter order: far sprites first
	sort.Slice(sprites, func(i, j int) bool {
		return sprites[i].distance > sprites[j].distance
	})

	for _, s := range sprites {
		r.fillSquare(s)
	}
}

// project maps an object center to screen space. The pixel half-extent is
// measured by projecting a second point offset along the camera's right
// axis, so apparent size falls off with distance.
func (r *Renderer) project(viewProj math.Mat4, o *scene.Object, half float64) (sprite, bool) {
	center, w := viewProj.TransformPoint(o.Position)
	if w <= 0 {
		return sprite{}, false // behind the camera
	}

	right := r.world.Camera.Basis[0]
	edge, ew := viewProj.TransformPoint(o.Position.Add(right.Scale(half)))
	if ew <= 0 {
		return sprite{}, false
	}

	cx := int((center.X + 1) / 2 * float64(r.width))
	cy := int((1 - (center.Y+1)/2) * float64(r.height))
	ex := int((edge.X + 1) / 2 * float64(r.width))

	halfPx := ex - cx
	if halfPx < 0 {
		halfPx = -halfPx
	}
	if halfPx == 0 {
		halfPx = 1
	}

	return sprite{
		cx:       cx,
		cy:       cy,
		halfPx:   halfPx,
		distance: w,
		color:    r.shade(o),
	}, true
}

// shade returns the object's flat draw color. A mask override is emitted
// exactly; otherwise the base color gets a simple lambert term from the
// directional light so the appearance pass responds to the sampled light.
func (r *Renderer) shade(o *scene.Object) [3]uint8 {
	if m := r.overrides[o]; m != nil {
		if m.Unlit {
			return m.Color
		}
		return lambert(m.Color, r.world.Light)
	}
	return lambert(o.BaseColor, r.world.Light)
}

func lambert(base [3]uint8, light scene.LightState) [3]uint8 {
	// Up-facing surface against the light's elevation, with an ambient floor
	intensity := 0.25 + 0.75*gomath.Max(0, gomath.Sin(light.PitchRad))
	var out [3]uint8
	for i := 0; i < 3; i++ {
		out[i] = uint8(gomath.Min(255, float64(base[i])*intensity))
	}
	return out
}

func (r *Renderer) fillSquare(s sprite) {
	for y := s.cy - s.halfPx; y <= s.cy+s.halfPx; y++ {
		if y < 0 || y >= r.height {
			continue
		}
		for x := s.cx - s.halfPx; x <= s.cx+s.halfPx; x++ {
			if x < 0 || x >= r.width {
				continue
			}
			off := (y*r.width + x) * 4
			r.pix[off] = s.color[0]
			r.pix[off+1] = s.color[1]
			r.pix[off+2] = s.color[2]
			r.pix[off+3] = 255
		}
	}
}
