package demo

import (
	"encoding/hex"
	"strings"
	"time"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/sharing"
	"github.com/BackendStack21/trishare-go/utils"
)

// TokenLength is the size of each party's authentication token.
const TokenLength = 32

// AuthTokens returns one random token per party.
func AuthTokens() ([][]byte, error) {
	tokens := make([][]byte, trishare.ShareCount)
	for i := range tokens {
		t, err := utils.SecureRandomBytes(TokenLength)
		if err != nil {
			return nil, trishare.IOError(err)
		}
		tokens[i] = t
	}
	return tokens, nil
}

// Challenge is a timestamped message split across the three parties.
type Challenge struct {
	Shares           []*sharing.Share
	VerificationHash string
	Timestamp        string
}

// AuthChallenge splits message+timestamp and hashes the concatenated shares.
func AuthChallenge(s *sharing.Splitter, message string, now time.Time) (*Challenge, error) {
	ts := now.UTC().Format(time.RFC3339Nano)
	shares, err := s.Split([]byte(message + ts))
	if err != nil {
		return nil, err
	}
	return &Challenge{
		Shares:           shares,
		VerificationHash: challengeHash(shares),
		Timestamp:        ts,
	}, nil
}

func challengeHash(shares []*sharing.Share) string {
	parts := make([][]byte, len(shares))
	for i, sh := range shares {
		parts[i] = sh.Data()
	}
	sum := utils.Digest(parts...)
	return hex.EncodeToString(sum[:])
}

// Verify reconstructs the challenge and returns the original message. It
// fails with VerificationFailed when the shares no longer match the
// verification hash or the timestamp suffix.
func (c *Challenge) Verify(s *sharing.Splitter) (string, error) {
	if challengeHash(c.Shares) != c.VerificationHash {
		return "", trishare.VerificationFailed("challenge hash mismatch")
	}
	data, err := s.Reconstruct(c.Shares)
	if err != nil {
		return "", err
	}
	msg := string(data)
	if !strings.HasSuffix(msg, c.Timestamp) {
		return "", trishare.VerificationFailed("challenge timestamp mismatch")
	}
	return strings.TrimSuffix(msg, c.Timestamp), nil
}
