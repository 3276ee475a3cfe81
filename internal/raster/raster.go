// Package raster holds the in-memory raster model shared by the analysis
// pipeline: a categorical land-cover grid plus the affine georeferencing
// that maps pixel indices to projected ground coordinates.
package raster

import (
	"github.com/rotisserie/eris"
)

// Affine is a six-coefficient affine transform mapping pixel (col, row) to
// ground (x, y), using the same coefficient order as GDAL/rasterio:
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
type Affine struct {
	A, B, C, D, E, F float64
}

// FromOrigin builds a north-up transform from the coordinates of the
// upper-left corner and the pixel sizes. ySize is given positive and is
// negated internally, matching rasterio's from_origin.
func FromOrigin(west, north, xSize, ySize float64) Affine {
	return Affine{A: xSize, B: 0, C: west, D: 0, E: -ySize, F: north}
}

// PixelToGround maps fractional pixel coordinates to ground coordinates.
// (0, 0) is the upper-left corner of the upper-left pixel.
func (a Affine) PixelToGround(col, row float64) (x, y float64) {
	return a.A*col + a.B*row + a.C, a.D*col + a.E*row + a.F
}

// Coefficients returns the transform as [A B C D E F].
func (a Affine) Coefficients() [6]float64 {
	return [6]float64{a.A, a.B, a.C, a.D, a.E, a.F}
}

// Raster is an immutable land-use/land-cover tile: a row-major grid of
// integer category codes with georeferencing.
type Raster struct {
	Width     int
	Height    int
	Codes     []int
	Transform Affine
	CRS       string
}

// New validates dimensions against the code slice and returns a Raster.
func New(width, height int, codes []int, transform Affine, crs string) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, eris.Errorf("raster: invalid dimensions %dx%d", width, height)
	}
	if len(codes) != width*height {
		return nil, eris.Errorf("raster: %d codes for %dx%d grid", len(codes), width, height)
	}
	return &Raster{Width: width, Height: height, Codes: codes, Transform: transform, CRS: crs}, nil
}

// At returns the category code at (col, row).
func (r *Raster) At(col, row int) int {
	return r.Codes[row*r.Width+col]
}
