package ring

import (
	"fmt"
	"slices"

	"mpcring/utils/structs"
)

// Decompose returns the bit decomposition of t over Z_ringSize. The output
// has one extra trailing axis of length NrBits(ringSize), with index 0
// holding the least significant bit.
//
// Bits are extracted from the unsigned representative of each element, so
// that sum_p bit_p * 2^p = v mod ringSize holds for every element v,
// negative values included. They are stored as 0/1 values of the input
// element type, keeping the output directly usable in ring arithmetic.
//
// The element type must be the representation [TypeForRing] associates with
// ringSize. Elements of the boolean ring are their own decomposition and
// have no fixed-width signed representation, so they are not accepted here.
func Decompose[T Element](t *structs.Tensor[T], ringSize RingSize) (bits *structs.Tensor[T], err error) {

	kind, err := TypeForRing(ringSize)
	if err != nil {
		return nil, err
	}

	if k := KindOf[T](); k != kind {
		return nil, fmt.Errorf("%w: tensor of kind %s over ring %s (want %s)", ErrUnsupportedType, k, ringSize, kind)
	}

	nrBits, err := NrBits(ringSize)
	if err != nil {
		return nil, err
	}

	if bits, err = structs.NewTensor[T](append(slices.Clone(t.Shape), nrBits)...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, t.Shape)
	}

	mask := ^uint64(0) >> (64 - uint(nrBits))

	for i, v := range t.Values {

		// Unsigned representative of v in Z_ringSize.
		u := uint64(v) & mask

		for p := 0; p < nrBits; p++ {
			bits.Values[i*nrBits+p] = T((u >> uint(p)) & 1)
		}
	}

	return
}
