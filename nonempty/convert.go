package nonempty

import (
	"fmt"
	"slices"

	"github.com/quickwritereader/nonempty/smallvec"
)

// First returns the first element.
func (v *SmallVec1[T, A]) First() T {
	return v.vec().AsSlice()[0]
}

// Last returns the last element.
func (v *SmallVec1[T, A]) Last() T {
	s := v.vec().AsSlice()
	return s[len(s)-1]
}

// FirstPtr returns a pointer to the first element, valid until the next
// length or capacity change.
func (v *SmallVec1[T, A]) FirstPtr() *T {
	return &v.vec().AsSlice()[0]
}

// LastPtr returns a pointer to the last element, valid until the next length
// or capacity change.
func (v *SmallVec1[T, A]) LastPtr() *T {
	s := v.vec().AsSlice()
	return &s[len(s)-1]
}

// AsSmallVec returns the underlying buffer for read access. It must not be
// used to remove elements.
func (v *SmallVec1[T, A]) AsSmallVec() *smallvec.SmallVec[T, A] {
	return v.vec()
}

// IntoSmallVec moves the storage out into a plain SmallVec, which carries no
// non-empty guarantee. v is reset to its zero value.
func (v *SmallVec1[T, A]) IntoSmallVec() smallvec.SmallVec[T, A] {
	return v.vec().Take()
}

// IntoVec moves the elements into a heap slice. Spilled storage is handed over
// without copying. v is reset to its zero value.
func (v *SmallVec1[T, A]) IntoVec() []T {
	return v.vec().IntoVec()
}

// ToSlice returns a copy of the elements.
func (v *SmallVec1[T, A]) ToSlice() []T {
	return slices.Clone(v.vec().AsSlice())
}

// SplitOffFirst moves the storage out and returns the first element and the
// remaining elements, which may be empty. v is reset to its zero value.
func (v *SmallVec1[T, A]) SplitOffFirst() (T, smallvec.SmallVec[T, A]) {
	rest := v.vec().Take()
	first := rest.Remove(0)
	return first, rest
}

// SplitOffLast moves the storage out and returns the leading elements, which
// may be empty, and the last element. v is reset to its zero value.
func (v *SmallVec1[T, A]) SplitOffLast() (smallvec.SmallVec[T, A], T) {
	rest := v.vec().Take()
	last, _ := rest.Pop()
	return rest, last
}

// TryIntoInner moves the elements into the inline array type. It succeeds
// only if Len equals InlineSize; otherwise v is untouched and the error wraps
// ErrLengthMismatch.
func (v *SmallVec1[T, A]) TryIntoInner() (A, error) {
	return TryIntoArray[A](v)
}

// TryIntoArray moves the elements into a fixed-size array of shape M. It
// succeeds only if v holds exactly len(M) elements, after which v is reset to
// its zero value. On failure v is untouched and the error wraps
// ErrLengthMismatch.
func TryIntoArray[M smallvec.Array[T], T any, A smallvec.Array[T]](v *SmallVec1[T, A]) (M, error) {
	var m M
	b := v.vec()
	if b.Len() != len(m) {
		return m, fmt.Errorf("%w: have %d elements, want %d", ErrLengthMismatch, b.Len(), len(m))
	}
	copy(smallvec.Slots[T](&m), b.AsSlice())
	v.buf = smallvec.New[T, A]()
	return m, nil
}
