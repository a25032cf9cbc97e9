package soft

import (
	"bytes"
	"context"
	"testing"

	"github.com/Faultbox/synthcap/internal/scene"
	"github.com/Faultbox/synthcap/pkg/math"
)

func testWorld() *scene.World {
	w := &scene.World{Objects: []*scene.Object{
		{Name: "Ground", Trackable: false, Position: math.Vec3{Y: 0}, BaseColor: [3]uint8{60, 60, 60}},
		{Name: "Cube", Trackable: true, Position: math.Vec3{Y: 0.5}, BaseColor: [3]uint8{200, 160, 40}},
	}}
	pos := math.Vec3{X: 5, Y: 3, Z: 0}
	w.Camera = scene.CameraState{
		Position: pos,
		Basis:    math.LookAtBasis(pos, math.Vec3{Y: 0.5}, math.Vec3{Y: 1}),
	}
	w.Light = scene.LightState{PitchRad: 0.8, YawRad: 1.0}
	return w
}

func TestSnapshotRequiresComposition(t *testing.T) {
	r := New(testWorld())
	r.SetOutputSize(32, 32)

	if _, err := r.Snapshot(); err == nil {
		t.Error("snapshot before composition should fail")
	}

	if err := r.AwaitCompositionCycle(context.Background()); err != nil {
		t.Fatalf("composition failed: %v", err)
	}
	pixels, err := r.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(pixels) != 32*32*4 {
		t.Errorf("expected %d bytes, got %d", 32*32*4, len(pixels))
	}
}

func TestMaterialChangeInvalidatesComposition(t *testing.T) {
	w := testWorld()
	r := New(w)
	r.SetOutputSize(32, 32)

	if err := r.AwaitCompositionCycle(context.Background()); err != nil {
		t.Fatalf("composition failed: %v", err)
	}

	cube := w.Objects[1]
	r.SetOverride(cube, &scene.Material{Color: [3]uint8{255, 0, 0}, Unlit: true})

	if _, err := r.Snapshot(); err == nil {
		t.Error("snapshot after material change without a new composition should fail")
	}
}

func TestMaskOverrideChangesPixels(t *testing.T) {
	w := testWorld()
	r := New(w)
	r.SetOutputSize(64, 64)
	ctx := context.Background()

	if err := r.AwaitCompositionCycle(ctx); err != nil {
		t.Fatalf("composition failed: %v", err)
	}
	appearance, err := r.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	cube := w.Objects[1]
	maskColor := [3]uint8{255, 0, 0}
	r.SetOverride(cube, &scene.Material{Color: maskColor, Unlit: true})
	if err := r.AwaitCompositionCycle(ctx); err != nil {
		t.Fatalf("mask composition failed: %v", err)
	}
	masked, err := r.Snapshot()
	if err != nil {
		t.Fatalf("mask snapshot failed: %v", err)
	}

	if bytes.Equal(appearance, masked) {
		t.Error("mask override should change the rendered output")
	}

	// The exact mask color appears in the masked buffer, unshaded. The cube
	// sits at the look-at target, so it covers the image center.
	center := (32*64 + 32) * 4
	if masked[center] != maskColor[0] || masked[center+1] != maskColor[1] || masked[center+2] != maskColor[2] {
		t.Errorf("center pixel should carry the exact mask color, got (%d,%d,%d)",
			masked[center], masked[center+1], masked[center+2])
	}

	// Restoring the override reproduces the appearance pass pixel-identically
	r.SetOverride(cube, nil)
	if err := r.AwaitCompositionCycle(ctx); err != nil {
		t.Fatalf("restore composition failed: %v", err)
	}
	restored, err := r.Snapshot()
	if err != nil {
		t.Fatalf("restored snapshot failed: %v", err)
	}
	if !bytes.Equal(appearance, restored) {
		t.Error("restored scene should render pixel-identically to the appearance pass")
	}
}

func TestCompositionHonorsCancelledContext(t *testing.T) {
	r := New(testWorld())
	r.SetOutputSize(16, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.AwaitCompositionCycle(ctx); err == nil {
		t.Error("composition with cancelled context should fail")
	}
}
