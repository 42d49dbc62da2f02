// Package otpcode generates short numeric passcodes.
package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Width is the number of digits in a generated code.
const Width = 4

var upper = big.NewInt(10000)

// Generate returns a uniformly random code in [0000, 9999]. Leading zeros
// are kept. It panics only if the system entropy source fails.
func Generate() string {
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		panic(fmt.Sprintf("otpcode: read entropy: %v", err))
	}
	return fmt.Sprintf("%0*d", Width, n.Int64())
}
