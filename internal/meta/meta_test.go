package meta

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/synthcap/internal/mask"
	"github.com/Faultbox/synthcap/internal/persist"
	"github.com/Faultbox/synthcap/internal/scene"
	"github.com/Faultbox/synthcap/pkg/math"
)

func testWorld() *scene.World {
	return &scene.World{
		Objects: []*scene.Object{
			{Name: "Ground", Trackable: false},
			{Name: "Cube", Trackable: true, Position: math.Vec3{X: 1, Y: 0.5, Z: -1}, YawRad: 1.25},
			{Name: "Sphere", Trackable: true, Position: math.Vec3{X: -0.5, Y: 0.5, Z: 0.25}, YawRad: 3.0},
		},
		Camera: scene.CameraState{
			Position: math.Vec3{X: 5, Y: 3, Z: 0},
			Basis:    math.LookAtBasis(math.Vec3{X: 5, Y: 3, Z: 0}, math.Vec3{Y: 0.5}, math.Vec3{Y: 1}),
		},
		Light: scene.LightState{PitchRad: 0.7, YawRad: 2.1},
	}
}

func testRegistry(w *scene.World) *mask.Registry {
	reg := mask.NewRegistry()
	reg.Assign(w.Objects)
	return reg
}

func TestBuildRecord(t *testing.T) {
	w := testWorld()
	reg := testRegistry(w)

	rec := BuildRecord(7, 12345, "rgb/frame_000007.png", "mask/frame_000007.png", w, reg)

	if rec.Frame != 7 || rec.Seed != 12345 {
		t.Errorf("frame/seed mismatch: %d, %d", rec.Frame, rec.Seed)
	}
	if rec.RGB != "rgb/frame_000007.png" || rec.Mask != "mask/frame_000007.png" {
		t.Errorf("artifact references mismatch: %s, %s", rec.RGB, rec.Mask)
	}

	// Only trackables, in discovery order
	if len(rec.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(rec.Objects))
	}
	if rec.Objects[0].Name != "Cube" || rec.Objects[1].Name != "Sphere" {
		t.Errorf("objects out of order: %s, %s", rec.Objects[0].Name, rec.Objects[1].Name)
	}
	if rec.Objects[0].MaskColorRGB != "FF0000" {
		t.Errorf("expected Cube mask color FF0000, got %s", rec.Objects[0].MaskColorRGB)
	}
	if rec.Objects[0].Position != [3]float64{1, 0.5, -1} {
		t.Errorf("Cube position mismatch: %v", rec.Objects[0].Position)
	}
	if rec.Objects[0].RotationYRad != 1.25 {
		t.Errorf("Cube yaw mismatch: %v", rec.Objects[0].RotationYRad)
	}

	if rec.Light.RotationRad != [3]float64{0.7, 2.1, 0} {
		t.Errorf("light rotation mismatch: %v", rec.Light.RotationRad)
	}
	if rec.Camera.Position != [3]float64{5, 3, 0} {
		t.Errorf("camera position mismatch: %v", rec.Camera.Position)
	}
}

func TestJSONFieldNames(t *testing.T) {
	w := testWorld()
	reg := testRegistry(w)
	rec := BuildRecord(0, 1, "rgb/frame_000000.png", "mask/frame_000000.png", w, reg)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Top-level schema is a compatibility contract
	for _, key := range []string{"frame", "seed", "rgb", "mask", "camera", "light", "objects"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	camera := decoded["camera"].(map[string]any)
	for _, key := range []string{"position", "basis_row0", "basis_row1", "basis_row2"} {
		if _, ok := camera[key]; !ok {
			t.Errorf("missing camera key %q", key)
		}
	}

	light := decoded["light"].(map[string]any)
	if _, ok := light["rotation_rad"]; !ok {
		t.Error("missing light key rotation_rad")
	}

	objects := decoded["objects"].([]any)
	obj := objects[0].(map[string]any)
	for _, key := range []string{"name", "position", "rotation_y_rad", "mask_color_rgb"} {
		if _, ok := obj[key]; !ok {
			t.Errorf("missing object key %q", key)
		}
	}
}

func TestWriteDeterministic(t *testing.T) {
	w := testWorld()
	reg := testRegistry(w)
	rec := BuildRecord(3, 42, "rgb/frame_000003.png", "mask/frame_000003.png", w, reg)

	dirA := t.TempDir()
	dirB := t.TempDir()
	store := persist.NewFSStore()

	if err := NewWriter(store, dirA).Write(rec); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := NewWriter(store, dirB).Write(rec); err != nil {
		t.Fatalf("second write: %v", err)
	}

	a, err := os.ReadFile(filepath.Join(dirA, "meta", "frame_000003.json"))
	if err != nil {
		t.Fatalf("reading first: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dirB, "meta", "frame_000003.json"))
	if err != nil {
		t.Fatalf("reading second: %v", err)
	}

	if string(a) != string(b) {
		t.Error("identical records should serialize byte-identically")
	}
}

func TestWriteDoesNotMutateWorld(t *testing.T) {
	w := testWorld()
	reg := testRegistry(w)

	before := *w.Objects[1]
	rec := BuildRecord(0, 1, "r", "m", w, reg)
	if err := NewWriter(persist.NewFSStore(), t.TempDir()).Write(rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	if *w.Objects[1] != before {
		t.Error("writing metadata must not mutate the world")
	}
}
