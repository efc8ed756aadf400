// Package demo holds three-party demonstrations built on the splitter and
// delay function: a key exchange, an authentication challenge, a simulated
// X-ray image and a paced training session.
package demo

import (
	"encoding/hex"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/utils"
)

// KeyExchangeRounds is the number of mixing rounds in KeyExchange.
const KeyExchangeRounds = 4

// KeyShare returns n random bytes for one party of a key exchange.
func KeyShare(n int) ([]byte, error) {
	if n <= 0 {
		return nil, trishare.InvalidInput("key share length must be positive, got %d", n)
	}
	b, err := utils.SecureRandomBytes(n)
	if err != nil {
		return nil, trishare.IOError(err)
	}
	return b, nil
}

// KeyExchange mixes the three parties' shares and returns the hex SHA3-256
// of the final state. Each round sets b = a^b, c = b^c, a = c^a; a final
// pass folds a into b and b into c.
func KeyExchange(a, b, c []byte) (string, error) {
	if len(a) == 0 || len(a) != len(b) || len(a) != len(c) {
		return "", trishare.InvalidInput("key shares must be non-empty and equal length (%d, %d, %d)", len(a), len(b), len(c))
	}

	for i := 0; i < KeyExchangeRounds; i++ {
		tb := utils.XORBytes(a, b)
		tc := utils.XORBytes(tb, c)
		ta := utils.XORBytes(tc, a)
		a, b, c = ta, tb, tc
	}
	b = utils.XORBytes(a, b)
	c = utils.XORBytes(b, c)

	sum := utils.Digest(a, b, c)
	return hex.EncodeToString(sum[:]), nil
}
