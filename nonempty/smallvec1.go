// Package nonempty provides SmallVec1, a small vector that always holds at
// least one element.
//
// Operations that cannot shorten the container are forwarded to the
// underlying smallvec.SmallVec unchanged. Operations that could leave it
// empty carry a Try prefix and return ErrEmpty instead, leaving the
// container as it was. Accessors such as First and Last return values
// directly because an element always exists.
package nonempty

import (
	"fmt"

	"github.com/quickwritereader/nonempty/smallvec"
)

// SmallVec1 is a smallvec.SmallVec that is never empty.
//
// The zero value holds a single zero-valued T. Values returned by the
// constructors are owned by the caller and must not be copied; pass them by
// pointer.
type SmallVec1[T any, A smallvec.Array[T]] struct {
	buf smallvec.SmallVec[T, A]
}

// vec returns the underlying buffer, materialising the zero value first.
func (v *SmallVec1[T, A]) vec() *smallvec.SmallVec[T, A] {
	if v.buf.IsEmpty() {
		var zero T
		v.buf.Push(zero)
	}
	return &v.buf
}

// New returns a container holding only first.
func New[T any, A smallvec.Array[T]](first T) *SmallVec1[T, A] {
	return WithCapacity[T, A](first, 1)
}

// WithCapacity returns a container holding only first, with room for
// capacity elements before reallocating.
func WithCapacity[T any, A smallvec.Array[T]](first T, capacity int) *SmallVec1[T, A] {
	v := &SmallVec1[T, A]{buf: smallvec.WithCapacity[T, A](capacity)}
	v.buf.Push(first)
	return v
}

// Of returns a container holding first followed by rest.
func Of[T any, A smallvec.Array[T]](first T, rest ...T) *SmallVec1[T, A] {
	v := WithCapacity[T, A](first, 1+len(rest))
	v.buf.ExtendFromSlice(rest)
	return v
}

// Default returns a container holding one zero-valued element.
func Default[T any, A smallvec.Array[T]]() *SmallVec1[T, A] {
	var zero T
	return New[T, A](zero)
}

// TryFromSmallVec adopts the storage of sv, which is left empty.
// It fails with ErrEmpty, leaving sv untouched, if sv has no elements.
func TryFromSmallVec[T any, A smallvec.Array[T]](sv *smallvec.SmallVec[T, A]) (*SmallVec1[T, A], error) {
	if sv.IsEmpty() {
		return nil, ErrEmpty
	}
	return &SmallVec1[T, A]{buf: sv.Take()}, nil
}

// TryFromSlice copies s into a new container.
func TryFromSlice[T any, A smallvec.Array[T]](s []T) (*SmallVec1[T, A], error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	return &SmallVec1[T, A]{buf: smallvec.FromSlice[T, A](s)}, nil
}

// TryFromVec builds a container from s, adopting it as heap storage when it
// does not fit inline. The caller must not use s after a successful call.
func TryFromVec[T any, A smallvec.Array[T]](s []T) (*SmallVec1[T, A], error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	return &SmallVec1[T, A]{buf: smallvec.FromVec[T, A](s)}, nil
}

// TryFromElem returns a container holding n copies of x.
// It fails with ErrEmpty if n is 0 and panics if n is negative.
func TryFromElem[T any, A smallvec.Array[T]](x T, n int) (*SmallVec1[T, A], error) {
	if n == 0 {
		return nil, ErrEmpty
	}
	return &SmallVec1[T, A]{buf: smallvec.FromElem[T, A](x, n)}, nil
}

// TryFromElemFunc returns a container of n elements, each produced by a call
// to f. Use it for elements that need a deep copy per slot.
func TryFromElemFunc[T any, A smallvec.Array[T]](n int, f func() T) (*SmallVec1[T, A], error) {
	if n == 0 {
		return nil, ErrEmpty
	}
	buf := smallvec.WithCapacity[T, A](n)
	buf.ResizeWith(n, f)
	return &SmallVec1[T, A]{buf: buf}, nil
}

// FromBuf returns a container using every slot of a. Inline shapes are never
// zero-length, so this cannot fail.
func FromBuf[T any, A smallvec.Array[T]](a A) *SmallVec1[T, A] {
	return &SmallVec1[T, A]{buf: smallvec.FromBuf[T](a)}
}

// TryFromBufAndLen returns a container using the first n slots of a.
// It fails with ErrEmpty if n is 0 and panics if n exceeds len(a).
func TryFromBufAndLen[T any, A smallvec.Array[T]](a A, n int) (*SmallVec1[T, A], error) {
	if n == 0 {
		return nil, ErrEmpty
	}
	return &SmallVec1[T, A]{buf: smallvec.FromBufAndLen[T](a, n)}, nil
}

// String renders the elements like a slice.
func (v *SmallVec1[T, A]) String() string {
	return v.vec().String()
}

// Format implements fmt.Formatter.
func (v *SmallVec1[T, A]) Format(state fmt.State, verb rune) {
	v.vec().Format(state, verb)
}
