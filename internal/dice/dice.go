// Package dice derives the winning face of a round.
package dice

import (
	"github.com/holiman/uint256"

	"github.com/KirkDiggler/dicepool/internal/models"
)

var faces = uint256.NewInt(models.Faces)

// ValidGuess reports whether n is a face of the die
func ValidGuess(n int) bool {
	return n >= 1 && n <= models.Faces
}

// WinningFace combines chain entropy with the revealed secret and maps the
// product onto a face: ((entropy * revealed) mod 6) + 1. The product is taken
// over the integers, it does not wrap at 2^256. Both values must be non-nil.
func WinningFace(entropy, revealed *uint256.Int) int {
	rem := new(uint256.Int).MulMod(entropy, revealed, faces)
	return int(rem.Uint64()) + 1
}
