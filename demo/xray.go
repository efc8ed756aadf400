package demo

import (
	"encoding/binary"
	"math"
	"math/rand"

	trishare "github.com/BackendStack21/trishare-go"
)

// X-ray simulation parameters.
const (
	XRayBitsPerPixel = 16
	XRayDiscRadius   = 500.0
)

// SimulateXRay returns width*height 16-bit little-endian pixels: a bright
// disc of radius XRayDiscRadius around the centre on a darker background.
// Pixel noise comes from rng.
func SimulateXRay(width, height int, rng *rand.Rand) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, trishare.InvalidInput("invalid dimensions %dx%d", width, height)
	}
	if width > math.MaxInt32/height/2 {
		return nil, trishare.InvalidInput("image %dx%d too large", width, height)
	}

	out := make([]byte, width*height*2)
	cx, cy := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v int
			if math.Hypot(float64(x)-cx, float64(y)-cy) < XRayDiscRadius {
				v = 3000 + rng.Intn(1000)
			} else {
				v = 1000 + rng.Intn(1000)
			}
			binary.LittleEndian.PutUint16(out[(y*width+x)*2:], uint16(v))
		}
	}
	return out, nil
}
