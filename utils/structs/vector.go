package structs

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Vector is a flat slice of fixed-width integer components.
type Vector[T constraints.Integer] []T

// NewVector allocates a zeroed [Vector] of the given size.
func NewVector[T constraints.Integer](size int) Vector[T] {
	return make([]T, size)
}

// Size returns the number of components of the receiver.
func (v Vector[T]) Size() int {
	return len(v)
}

// Copy copies the operand on the receiver, up to the
// maximum available size between the two.
func (v Vector[T]) Copy(other Vector[T]) {
	copy(v, other)
}

// Clone returns a deep copy of the receiver.
func (v Vector[T]) Clone() (vcpy Vector[T]) {
	vcpy = make([]T, len(v))
	copy(vcpy, v)
	return
}

// Equal performs a deep equal.
func (v Vector[T]) Equal(other Vector[T]) bool {
	return slices.Equal(v, other)
}
