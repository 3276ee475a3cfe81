package raster

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/image/tiff"
)

// WriteGrayTIFF writes a single-band 8-bit raster as an uncompressed TIFF
// with an ESRI world file (.tfw) alongside it carrying the affine transform.
// The world file references the center of the upper-left pixel.
func WriteGrayTIFF(path string, pixels []uint8, width, height int, transform Affine) error {
	if len(pixels) != width*height {
		return eris.Errorf("raster: %d pixels for %dx%d grid", len(pixels), width, height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Uncompressed}); err != nil {
		return eris.Wrap(err, "raster: encode tiff")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "raster: write %s", path)
	}

	return writeWorldFile(worldFilePath(path), transform)
}

// ReadGrayTIFF reads a single-band 8-bit TIFF written by WriteGrayTIFF and
// its world file, if present. A missing world file yields a zero transform.
func ReadGrayTIFF(path string) ([]uint8, int, int, Affine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, Affine{}, eris.Wrapf(err, "raster: read %s", path)
	}
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, Affine{}, eris.Wrap(err, "raster: decode tiff")
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pixels[y*w+x] = uint8(r >> 8)
		}
	}

	tr, err := readWorldFile(worldFilePath(path))
	if err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			return pixels, w, h, Affine{}, nil
		}
		return nil, 0, 0, Affine{}, err
	}
	return pixels, w, h, tr, nil
}

func worldFilePath(tiffPath string) string {
	ext := filepath.Ext(tiffPath)
	return strings.TrimSuffix(tiffPath, ext) + ".tfw"
}

// writeWorldFile emits the six world-file lines: x size, rotations, negative
// y size, then the ground coordinates of the upper-left pixel center.
func writeWorldFile(path string, t Affine) error {
	cx := t.C + t.A/2 + t.B/2
	cy := t.F + t.D/2 + t.E/2
	content := fmt.Sprintf("%.10f\n%.10f\n%.10f\n%.10f\n%.10f\n%.10f\n",
		t.A, t.D, t.B, t.E, cx, cy)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return eris.Wrapf(err, "raster: write world file %s", path)
	}
	return nil
}

func readWorldFile(path string) (Affine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Affine{}, eris.Wrapf(err, "raster: read world file %s", path)
	}
	fields := strings.Fields(string(data))
	if len(fields) != 6 {
		return Affine{}, eris.Errorf("raster: world file %s has %d values, want 6", path, len(fields))
	}
	vals := make([]float64, 6)
	for i, f := range fields {
		if _, err := fmt.Sscanf(f, "%f", &vals[i]); err != nil {
			return Affine{}, eris.Wrapf(err, "raster: world file %s value %d", path, i)
		}
	}
	t := Affine{A: vals[0], D: vals[1], B: vals[2], E: vals[3]}
	// Undo the pixel-center offset applied on write.
	t.C = vals[4] - t.A/2 - t.B/2
	t.F = vals[5] - t.D/2 - t.E/2
	return t, nil
}
