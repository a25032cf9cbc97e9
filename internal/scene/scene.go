// Package scene defines the live scene state shared between the capture
// loop and the renderer, plus the narrow interfaces the renderer, scene
// graph, and material system are consumed through.
package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faultbox/synthcap/pkg/math"
)

// ErrNoTrackables is returned by Discover when the scene graph contains no
// trackable object. A run over an empty object set is a startup failure.
var ErrNoTrackables = errors.New("scene: no trackable objects")

// ErrDuplicateName is returned by Discover when two objects share a name.
// Names key the mask registry and the metadata records, so they must be
// unique across the whole scene.
var ErrDuplicateName = errors.New("scene: duplicate object name")

// Object is a scene object discovered at run start. Pose is mutated every
// frame; the mask color is assigned once by the mask registry and never
// changes. Objects with Trackable == false (ground, backdrop) are posed by
// the scene author but excluded from randomization, masking, and metadata.
type Object struct {
	Name      string
	Position  math.Vec3
	YawRad    float64 // rotation around the Y axis; pitch/roll stay 0
	Trackable bool
	BaseColor [3]uint8 // appearance color used by the reference renderer
}

// CameraState is the camera pose. The basis is derived from the look-at
// constraint every frame, never sampled or cached independently.
type CameraState struct {
	Position math.Vec3
	Basis    math.Basis3
}

// LightState is the directional light orientation. There is no position.
type LightState struct {
	PitchRad float64
	YawRad   float64
	RollRad  float64 // always 0
}

// World is the live scene state. It has a single writer (the capture loop)
// and a single reader (the renderer), never concurrently.
type World struct {
	Objects []*Object // discovery order, stable for the whole run
	Camera  CameraState
	Light   LightState
}

// Trackables returns the trackable objects in discovery order.
func (w *World) Trackables() []*Object {
	var out []*Object
	for _, o := range w.Objects {
		if o.Trackable {
			out = append(out, o)
		}
	}
	return out
}

// Graph is the scene-graph collaborator. Traverse returns the objects that
// expose a renderable mesh, in a stable order; that order is the discovery
// order used for mask assignment, randomization, and metadata.
type Graph interface {
	Traverse() []*Object
}

// StaticGraph is a Graph over a fixed object list, in list order.
type StaticGraph struct {
	objects []*Object
}

// NewStaticGraph creates a graph that traverses the given objects in order.
func NewStaticGraph(objects ...*Object) *StaticGraph {
	return &StaticGraph{objects: objects}
}

// Traverse returns the objects in construction order.
func (g *StaticGraph) Traverse() []*Object {
	return g.objects
}

// Discover runs the scene-graph traversal once at run start.
func Discover(g Graph) (*World, error) {
	w := &World{Objects: g.Traverse()}

	seen := make(map[string]struct{}, len(w.Objects))
	for _, o := range w.Objects {
		if _, dup := seen[o.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, o.Name)
		}
		seen[o.Name] = struct{}{}
	}

	if len(w.Trackables()) == 0 {
		return nil, ErrNoTrackables
	}
	return w, nil
}

// Material is a renderer material override. Mask materials are flat, unlit
// and non-specular so mask pixels carry the exact registered color.
type Material struct {
	Color [3]uint8
	Unlit bool
}

// Viewport is the renderer collaborator. AwaitCompositionCycle suspends the
// caller until one full render/composition cycle has completed, which is
// required before a pixel-accurate Snapshot reflects prior scene mutations.
type Viewport interface {
	SetOutputSize(w, h int)
	AwaitCompositionCycle(ctx context.Context) error
	Snapshot() ([]byte, error) // raw RGBA, w*h*4 bytes
}

// MaterialSystem manages per-object material overrides. A nil material
// means "no override" and must round-trip as nil through save/restore.
type MaterialSystem interface {
	Override(o *Object) *Material
	SetOverride(o *Object, m *Material)
}

// OverrideSet is a standalone map-backed MaterialSystem for viewports that
// do not track overrides themselves; the draw path reads the overrides back
// through Override when shading.
type OverrideSet struct {
	overrides map[*Object]*Material
}

// NewOverrideSet creates an empty override set.
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{overrides: make(map[*Object]*Material)}
}

// Override returns the object's current override, nil if none is set.
func (s *OverrideSet) Override(o *Object) *Material {
	return s.overrides[o]
}

// SetOverride sets the object's override; nil clears it.
func (s *OverrideSet) SetOverride(o *Object, m *Material) {
	if m == nil {
		delete(s.overrides, o)
		return
	}
	s.overrides[o] = m
}
