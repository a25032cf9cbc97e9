package persist

import (
	"fmt"
	"path/filepath"
)

// Dataset directory layout:
//
//	<dir>/rgb/frame_000000.png
//	<dir>/mask/frame_000000.png
//	<dir>/meta/frame_000000.json

// FrameBase returns the zero-padded base name for a frame index.
func FrameBase(index int) string {
	return fmt.Sprintf("frame_%06d", index)
}

// ImagePath returns the path of an image artifact. kind is "rgb" or "mask".
func ImagePath(dir, kind string, index int, ext string) string {
	return filepath.Join(dir, kind, FrameBase(index)+"."+ext)
}

// MetaPath returns the path of a frame's metadata record.
func MetaPath(dir string, index int) string {
	return filepath.Join(dir, "meta", FrameBase(index)+".json")
}
