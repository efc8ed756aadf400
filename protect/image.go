package protect

import (
	"math/bits"

	trishare "github.com/BackendStack21/trishare-go"
)

// Modality is the acquisition technique of a medical image.
type Modality string

const (
	XRay       Modality = "xray"
	MRI        Modality = "mri"
	CT         Modality = "ct"
	Ultrasound Modality = "ultrasound"
)

// ImageMeta describes a raw image buffer.
type ImageMeta struct {
	Width        int
	Height       int
	BitsPerPixel int
	Modality     Modality
}

// Size returns the byte size a buffer with these dimensions must have.
func (m ImageMeta) Size() (int, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return 0, trishare.InvalidInput("invalid dimensions %dx%d", m.Width, m.Height)
	}
	if m.BitsPerPixel <= 0 || m.BitsPerPixel%8 != 0 {
		return 0, trishare.InvalidInput("bits per pixel must be a positive multiple of 8, got %d", m.BitsPerPixel)
	}
	hi, px := bits.Mul64(uint64(m.Width), uint64(m.Height))
	hi2, size := bits.Mul64(px, uint64(m.BitsPerPixel/8))
	if hi != 0 || hi2 != 0 || size > uint64(maxInt) {
		return 0, trishare.InvalidInput("image %dx%d too large", m.Width, m.Height)
	}
	return int(size), nil
}

const maxInt = int(^uint(0) >> 1)

// Image is a protected payload carrying image metadata.
type Image struct {
	*Payload
	Meta ImageMeta
}

// NewImage checks that data matches meta and protects it.
func NewImage(data []byte, meta ImageMeta, cfg trishare.Config, opts ...Option) (*Image, error) {
	size, err := meta.Size()
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, trishare.InvalidInput("data size %d doesn't match dimensions (want %d)", len(data), size)
	}

	p, err := New(data, cfg.Sharing, cfg.Temporal, opts...)
	if err != nil {
		return nil, err
	}
	return &Image{Payload: p, Meta: meta}, nil
}
