package persist

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EncodePNG encodes a raw RGBA pixel buffer (width*height*4 bytes, top-left
// origin) as PNG.
func EncodePNG(pixels []byte, width, height int) ([]byte, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[y*rowSize:y*rowSize+rowSize])
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}

	return buf.Bytes(), nil
}
