package ring

import (
	"fmt"
	"slices"

	"mpcring/utils/structs"
)

// CountWraps returns, for every element position, the net number of modular
// wraparounds incurred when the shares are summed in the given order. The
// counts are signed: an overflow of the running sum increments the count, an
// underflow decrements it. Higher-level fixed-point multiplication protocols
// consume them to correct truncated products, so a wraparound is information,
// not an error.
//
// The accumulation is strictly sequential over the share order: detection
// relies on the sign of the intermediate fixed-width sums, interpreted as
// two's complement, so the result is not invariant under reordering or
// parallel reduction. A sequence holding a single share yields all-zero
// counts.
//
// The detection heuristic follows the CrypTen project
// (https://github.com/facebookresearch/CrypTen).
func CountWraps[T Element](shares []*structs.Tensor[T]) (wraps *structs.Tensor[int64], err error) {

	if len(shares) == 0 {
		return nil, fmt.Errorf("empty share sequence")
	}

	shape := shares[0].Shape
	for i, share := range shares[1:] {
		if !slices.Equal(share.Shape, shape) {
			return nil, fmt.Errorf("share %d has shape %v, want %v", i+1, share.Shape, shape)
		}
	}

	if wraps, err = structs.NewTensor[int64](shape...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, shape)
	}

	acc := shares[0].Values.Clone()

	for _, share := range shares[1:] {

		cur := share.Values

		for i := range acc {

			// Native fixed-width addition; Go guarantees
			// two's-complement wraparound on overflow.
			next := acc[i] + cur[i]

			// Both operands negative but a positive sum is an underflow.
			if acc[i] < 0 && cur[i] < 0 && next > 0 {
				wraps.Values[i]--
			}

			// Both operands positive but a negative sum is an overflow.
			if acc[i] > 0 && cur[i] > 0 && next < 0 {
				wraps.Values[i]++
			}

			acc[i] = next
		}
	}

	return
}
