package structs

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Tensor is a dense multi-dimensional array of fixed-width integers, stored
// flat in row-major order. A Tensor with an empty shape is a scalar of size 1.
type Tensor[T constraints.Integer] struct {
	Shape  []int
	Values Vector[T]
}

var (
	_ Equatable[Tensor[int64]] = (*Tensor[int64])(nil)
	_ Cloner[Tensor[int64]]    = (*Tensor[int64])(nil)
	_ BinarySizer              = (*Tensor[int64])(nil)
	_ io.WriterTo              = (*Tensor[int64])(nil)
	_ io.ReaderFrom            = (*Tensor[int64])(nil)
)

// NewTensor allocates a zeroed [Tensor] with the given shape.
// Returns an error if any dimension is not strictly positive.
func NewTensor[T constraints.Integer](shape ...int) (t *Tensor[T], err error) {

	size := 1
	for _, dim := range shape {
		if dim < 1 {
			return nil, fmt.Errorf("invalid shape %v: dimensions must be strictly positive", shape)
		}
		size *= dim
	}

	return &Tensor[T]{
		Shape:  slices.Clone(shape),
		Values: NewVector[T](size),
	}, nil
}

// Size returns the number of elements of the receiver.
func (t *Tensor[T]) Size() int {
	return len(t.Values)
}

// Dims returns the number of dimensions of the receiver.
func (t *Tensor[T]) Dims() int {
	return len(t.Shape)
}

// At returns the element at the given multi-index.
// Method panics if the index does not match the shape.
func (t *Tensor[T]) At(indices ...int) T {
	return t.Values[t.offset(indices)]
}

// Set assigns the element at the given multi-index.
// Method panics if the index does not match the shape.
func (t *Tensor[T]) Set(x T, indices ...int) {
	t.Values[t.offset(indices)] = x
}

func (t *Tensor[T]) offset(indices []int) (offset int) {

	if len(indices) != len(t.Shape) {
		panic(fmt.Errorf("invalid indices %v for shape %v", indices, t.Shape))
	}

	for i, idx := range indices {
		if idx < 0 || idx >= t.Shape[i] {
			panic(fmt.Errorf("index %v out of bounds for shape %v", indices, t.Shape))
		}
		offset = offset*t.Shape[i] + idx
	}

	return
}

// Clone returns a deep copy of the receiver.
func (t *Tensor[T]) Clone() (tcpy *Tensor[T]) {
	return &Tensor[T]{
		Shape:  slices.Clone(t.Shape),
		Values: t.Values.Clone(),
	}
}

// Equal performs a deep equal.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	return slices.Equal(t.Shape, other.Shape) && t.Values.Equal(other.Values)
}

// BinarySize returns the serialized size of the object in bytes.
func (t *Tensor[T]) BinarySize() int {
	var z T
	return 8 + 8*len(t.Shape) + len(t.Values)*int(unsafe.Sizeof(z))
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly [Tensor.BinarySize] bytes on w.
func (t *Tensor[T]) WriteTo(w io.Writer) (n int64, err error) {

	bw, flush := bufio.NewWriter(w), true
	if b, ok := w.(*bufio.Writer); ok {
		bw, flush = b, false
	}

	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(len(t.Shape)))
	if _, err = bw.Write(buf[:]); err != nil {
		return n, err
	}
	n += 8

	for _, dim := range t.Shape {
		binary.LittleEndian.PutUint64(buf[:], uint64(dim))
		if _, err = bw.Write(buf[:]); err != nil {
			return n, err
		}
		n += 8
	}

	var z T
	size := int(unsafe.Sizeof(z))

	for _, x := range t.Values {
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		if _, err = bw.Write(buf[:size]); err != nil {
			return n, err
		}
		n += int64(size)
	}

	if flush {
		return n, bw.Flush()
	}

	return n, nil
}

// ReadFrom reads on the object from an io.Reader.
// It implements the io.ReaderFrom interface.
func (t *Tensor[T]) ReadFrom(r io.Reader) (n int64, err error) {

	br := bufio.NewReader(r)

	var buf [8]byte

	if _, err = io.ReadFull(br, buf[:]); err != nil {
		return n, err
	}
	n += 8

	dims := int(binary.LittleEndian.Uint64(buf[:]))

	shape := make([]int, dims)
	size := 1
	for i := range shape {

		if _, err = io.ReadFull(br, buf[:]); err != nil {
			return n, err
		}
		n += 8

		shape[i] = int(binary.LittleEndian.Uint64(buf[:]))

		if shape[i] < 1 {
			return n, fmt.Errorf("invalid serialized shape %v: dimensions must be strictly positive", shape[:i+1])
		}

		size *= shape[i]
	}

	var z T
	width := int(unsafe.Sizeof(z))

	values := NewVector[T](size)
	for i := range values {

		clear(buf[:])
		if _, err = io.ReadFull(br, buf[:width]); err != nil {
			return n, err
		}
		n += int64(width)

		// Truncating conversion restores the sign of narrow signed components.
		values[i] = T(binary.LittleEndian.Uint64(buf[:]))
	}

	t.Shape = shape
	t.Values = values

	return n, nil
}

// MarshalBinary encodes the object into a binary form on a newly allocated
// slice of bytes.
func (t *Tensor[T]) MarshalBinary() (p []byte, err error) {
	buf := bytes.NewBuffer(make([]byte, 0, t.BinarySize()))
	_, err = t.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by [Tensor.MarshalBinary]
// or [Tensor.WriteTo] on the object.
func (t *Tensor[T]) UnmarshalBinary(p []byte) (err error) {
	_, err = t.ReadFrom(bytes.NewReader(p))
	return
}
