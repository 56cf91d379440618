// Package ring implements the local arithmetic substrate of additive secret
// sharing over fixed-size integer rings Z_{2^k}: the bijection between a ring
// modulus and the fixed-width representation of its elements, wraparound
// counting during share reconstruction, seeded uniform ring-element sampling
// and bit decomposition.
package ring

import (
	"errors"
	"fmt"
	"math/big"

	"mpcring/utils/bignum"
	"mpcring/utils/structs"
)

// RingSize is the modulus 2^k of an integer ring Z_{2^k}.
// The 2^64 ring is represented by the wrapped value 0;
// use the exported constants rather than literals.
type RingSize uint64

const (
	// Ring2 is the degenerate boolean ring Z_2.
	Ring2    RingSize = 1 << 1
	Ring2p8  RingSize = 1 << 8
	Ring2p16 RingSize = 1 << 16
	Ring2p32 RingSize = 1 << 32
	// Ring2p64 is Z_{2^64}. Its modulus wraps the uint64 representation to 0.
	Ring2p64 RingSize = 0
)

// Kind is the fixed-width representation of a ring element.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
)

var (
	// ErrUnsupportedRingSize is returned on lookups with a ring size outside
	// the supported set {2^1, 2^8, 2^16, 2^32, 2^64}.
	ErrUnsupportedRingSize = errors.New("unsupported ring size")

	// ErrUnsupportedType is returned on lookups with an element type that has
	// no associated ring size.
	ErrUnsupportedType = errors.New("unsupported element type")

	// ErrInvalidShape is returned on allocation requests with a non-positive
	// dimension.
	ErrInvalidShape = errors.New("invalid shape")
)

// Immutable lookup tables, built once at package initialization and never
// mutated: map access is the memoization, lookups are O(1) for the lifetime
// of the process.
var (
	ringToKind = map[RingSize]Kind{
		Ring2:    KindBool,
		Ring2p8:  KindInt8,
		Ring2p16: KindInt16,
		Ring2p32: KindInt32,
		Ring2p64: KindInt64,
	}

	kindToRing = map[Kind]RingSize{
		KindBool:  Ring2,
		KindInt8:  Ring2p8,
		KindInt16: Ring2p16,
		KindInt32: Ring2p32,
		KindInt64: Ring2p64,
	}

	// Bit width of each ring, i.e. bit_length(modulus-1). The boolean ring is
	// pinned explicitly to 1 bit: it must not fall through to a generic
	// bit-length computation, which underflows on the degenerate modulus.
	ringToBits = map[RingSize]int{
		Ring2:    1,
		Ring2p8:  8,
		Ring2p16: 16,
		Ring2p32: 32,
		Ring2p64: 64,
	}
)

// TypeForRing returns the fixed-width representation of the elements of
// Z_ringSize. Returns [ErrUnsupportedRingSize] if the ring size is not in
// {2^1, 2^8, 2^16, 2^32, 2^64}.
func TypeForRing(ringSize RingSize) (Kind, error) {
	kind, ok := ringToKind[ringSize]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedRingSize, uint64(ringSize))
	}
	return kind, nil
}

// RingForType returns the ring size whose elements are represented by kind.
// It is the inverse of [TypeForRing]. Returns [ErrUnsupportedType] if the
// kind has no associated ring size.
func RingForType(kind Kind) (RingSize, error) {
	ringSize, ok := kindToRing[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedType, uint8(kind))
	}
	return ringSize, nil
}

// NrBits returns the number of bits required to represent an element of
// Z_ringSize, i.e. bit_length(ringSize-1), with the boolean ring pinned to 1.
func NrBits(ringSize RingSize) (int, error) {
	nrBits, ok := ringToBits[ringSize]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedRingSize, uint64(ringSize))
	}
	return nrBits, nil
}

// Bits returns the width in bits of the representation.
func (k Kind) Bits() int {
	switch k {
	case KindBool:
		return 1
	case KindInt8:
		return 8
	case KindInt16:
		return 16
	case KindInt32:
		return 32
	case KindInt64:
		return 64
	default:
		panic(fmt.Errorf("invalid kind: %d", uint8(k)))
	}
}

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Modulus returns the exact modulus of the ring, 2^64 included.
func (r RingSize) Modulus() *big.Int {
	if r == Ring2p64 {
		return new(big.Int).Lsh(bignum.NewInt(1), 64)
	}
	return bignum.NewInt(uint64(r))
}

func (r RingSize) String() string {
	if nrBits, err := NrBits(r); err == nil {
		return fmt.Sprintf("2^%d", nrBits)
	}
	return fmt.Sprintf("%d", uint64(r))
}

// Element is the constraint satisfied by the fixed-width signed integer types
// representing ring elements. Arithmetic on an Element is implicitly modulo
// its ring size through the two's-complement wraparound of the native type.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// KindOf returns the [Kind] representing the element type T.
// The width of T is discriminated through its wraparound behaviour,
// which covers derived (~intN) types as well.
func KindOf[T Element]() Kind {
	switch {
	case T(1)<<7 < 0:
		return KindInt8
	case T(1)<<15 < 0:
		return KindInt16
	case T(1)<<31 < 0:
		return KindInt32
	default:
		return KindInt64
	}
}

// RingOf returns the ring size whose elements are represented by T.
func RingOf[T Element]() RingSize {
	return kindToRing[KindOf[T]()]
}

// Stats returns the base 2 logarithm of the standard deviation and the mean
// of the elements of t.
func Stats[T Element](t *structs.Tensor[T]) [2]float64 {
	values := make([]big.Int, t.Size())
	for i, v := range t.Values {
		values[i].SetInt64(int64(v))
	}
	return bignum.Stats(values, 128)
}
