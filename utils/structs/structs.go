// Package structs implements generic containers for fixed-width integer
// values, as well as their serialization.
package structs

type Equatable[T any] interface {
	Equal(*T) bool
}

type Cloner[V any] interface {
	Clone() *V
}

type BinarySizer interface {
	BinarySize() int
}
