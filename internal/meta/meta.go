// Package meta builds and persists per-frame metadata records. Field names
// and nesting are a compatibility contract with downstream ML tooling; do
// not rename them.
package meta

import (
	"encoding/json"
	"fmt"

	"github.com/Faultbox/synthcap/internal/mask"
	"github.com/Faultbox/synthcap/internal/persist"
	"github.com/Faultbox/synthcap/internal/scene"
)

// CameraRecord is the serialized camera pose: position plus the three rows
// of the row-major orthonormal basis (right, up, back).
type CameraRecord struct {
	Position  [3]float64 `json:"position"`
	BasisRow0 [3]float64 `json:"basis_row0"`
	BasisRow1 [3]float64 `json:"basis_row1"`
	BasisRow2 [3]float64 `json:"basis_row2"`
}

// LightRecord is the serialized directional-light orientation.
type LightRecord struct {
	RotationRad [3]float64 `json:"rotation_rad"` // pitch, yaw, roll
}

// ObjectRecord is one trackable object's snapshot.
type ObjectRecord struct {
	Name         string     `json:"name"`
	Position     [3]float64 `json:"position"`
	RotationYRad float64    `json:"rotation_y_rad"`
	MaskColorRGB string     `json:"mask_color_rgb"`
}

// FrameRecord is the complete, immutable description of one frame. One
// record exists per frame; the frame index is the run's monotonic counter.
type FrameRecord struct {
	Frame   int            `json:"frame"`
	Seed    uint64         `json:"seed"`
	RGB     string         `json:"rgb"`
	Mask    string         `json:"mask"`
	Camera  CameraRecord   `json:"camera"`
	Light   LightRecord    `json:"light"`
	Objects []ObjectRecord `json:"objects"`
}

// BuildRecord snapshots the current world state into a FrameRecord. The
// object list is restricted to trackables, preserving discovery order.
// The world is not mutated.
func BuildRecord(frame int, seed uint64, rgbPath, maskPath string, w *scene.World, reg *mask.Registry) *FrameRecord {
	rec := &FrameRecord{
		Frame: frame,
		Seed:  seed,
		RGB:   rgbPath,
		Mask:  maskPath,
		Camera: CameraRecord{
			Position:  w.Camera.Position.Array(),
			BasisRow0: w.Camera.Basis.Row(0),
			BasisRow1: w.Camera.Basis.Row(1),
			BasisRow2: w.Camera.Basis.Row(2),
		},
		Light: LightRecord{
			RotationRad: [3]float64{w.Light.PitchRad, w.Light.YawRad, w.Light.RollRad},
		},
	}

	for _, o := range w.Trackables() {
		rec.Objects = append(rec.Objects, ObjectRecord{
			Name:         o.Name,
			Position:     o.Position.Array(),
			RotationYRad: o.YawRad,
			MaskColorRGB: reg.Hex(o.Name),
		})
	}

	return rec
}

// Writer persists frame records under <dir>/meta/.
type Writer struct {
	store persist.Store
	dir   string
}

// NewWriter creates a Writer rooted at the dataset output directory.
func NewWriter(store persist.Store, dir string) *Writer {
	return &Writer{store: store, dir: dir}
}

// Write serializes the record and persists it keyed by its frame index.
func (w *Writer) Write(rec *FrameRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling frame %d metadata: %w", rec.Frame, err)
	}
	return w.store.WriteText(persist.MetaPath(w.dir, rec.Frame), string(data)+"\n")
}
