// Package sample generates synthetic LULC tiles for demos and as the
// fallback input when the remote fetch fails.
package sample

import (
	"math/rand"

	"github.com/terracanopy/connectivity-cli/internal/raster"
)

const (
	codeDeciduousForest = 3
	codeAgriculture     = 6
)

// Generate builds a deterministic synthetic LULC tile: an agriculture
// background, one large central forest disk, and seeded scattered forest
// fragments. The transform places the tile in a UTM-like projected CRS at
// 30 m resolution.
func Generate(width, height int, seed int64) *raster.Raster {
	codes := make([]int, width*height)
	for i := range codes {
		codes[i] = codeAgriculture
	}

	// Central core forest disk.
	cx, cy := width/2, height/2
	radius := height / 4
	fillDisk(codes, width, height, cx, cy, radius, codeDeciduousForest)

	// Scattered fragments.
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < 20; i++ {
		fx := rng.Intn(width)
		fy := rng.Intn(height)
		fr := 5 + rng.Intn(15)
		fillDisk(codes, width, height, fx, fy, fr, codeDeciduousForest)
	}

	r, err := raster.New(width, height,
		codes, raster.FromOrigin(700000, 2500000, 30, 30), "EPSG:32644")
	if err != nil {
		// Dimensions are validated by the callers; only programmer error
		// reaches here.
		panic(err)
	}
	return r
}

func fillDisk(codes []int, width, height, cx, cy, radius, code int) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		if y < 0 || y >= height {
			continue
		}
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= width {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy < r2 {
				codes[y*width+x] = code
			}
		}
	}
}
