package sharing

import (
	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/utils"
)

// Share is one of the three XOR shares of a padded secret. Its content hash
// is computed once at construction; Verify detects any later change to the
// bytes it carries.
type Share struct {
	data []byte
	id   uint8
	hash [trishare.HashSize]byte
}

// NewShare copies data and hashes it.
func NewShare(data []byte, id uint8) *Share {
	buf := make([]byte, len(data))
	copy(buf, data)
	return newShare(buf, id)
}

// newShare takes ownership of data.
func newShare(data []byte, id uint8) *Share {
	return &Share{data: data, id: id, hash: utils.Digest(data)}
}

// FromParts rebuilds a share from previously exported fields. The stored
// hash is kept as given, so Verify reports whether data still matches it.
func FromParts(data []byte, id uint8, hash [trishare.HashSize]byte) (*Share, error) {
	if id >= trishare.ShareCount {
		return nil, trishare.InvalidInput("share id %d out of range", id)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Share{data: buf, id: id, hash: hash}, nil
}

// ID returns the share identifier (0, 1 or 2).
func (s *Share) ID() uint8 { return s.id }

// Len returns the share length in bytes.
func (s *Share) Len() int { return len(s.data) }

// Hash returns the content hash recorded at construction.
func (s *Share) Hash() [trishare.HashSize]byte { return s.hash }

// Data returns a copy of the share bytes.
func (s *Share) Data() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Verify recomputes the content hash and compares it with the stored one.
func (s *Share) Verify() bool {
	sum := utils.Digest(s.data)
	return utils.ConstantTimeEqual(sum[:], s.hash[:])
}
