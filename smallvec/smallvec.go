package smallvec

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"slices"
	"unsafe"
)

// ErrCapacityOverflow is returned when a requested capacity does not fit in an int.
var ErrCapacityOverflow = errors.New("smallvec: capacity overflow")

// Array is the set of inline storage shapes a SmallVec can be declared with.
// The inline capacity of a SmallVec[T, A] is len(A).
type Array[T any] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T |
		~[12]T | ~[16]T | ~[24]T | ~[32]T | ~[48]T | ~[64]T | ~[128]T | ~[256]T
}

// SmallVec is a growable array that keeps up to len(A) elements inline and
// spills to a single heap slice once that is exceeded.
//
// The zero value is an empty vector ready to use. A SmallVec must not be
// copied after first use; hand it around by pointer or move it out with Take.
type SmallVec[T any, A Array[T]] struct {
	inline A
	n      int // inline length, unused once spilled
	heap   []T // non-nil iff spilled
}

// Slots returns a slice view over every slot of the array a.
func Slots[T any, A Array[T]](a *A) []T {
	return unsafe.Slice((*T)(unsafe.Pointer(a)), len(*a))
}

// New returns an empty vector.
func New[T any, A Array[T]]() SmallVec[T, A] {
	return SmallVec[T, A]{}
}

// WithCapacity returns an empty vector able to hold n elements without
// reallocating.
func WithCapacity[T any, A Array[T]](n int) SmallVec[T, A] {
	var v SmallVec[T, A]
	v.ReserveExact(n)
	return v
}

// FromSlice copies s into a new vector.
func FromSlice[T any, A Array[T]](s []T) SmallVec[T, A] {
	v := WithCapacity[T, A](len(s))
	v.ExtendFromSlice(s)
	return v
}

// FromVec builds a vector from s. When s does not fit inline it is adopted as
// the heap storage without copying, and the caller must not use s afterwards.
func FromVec[T any, A Array[T]](s []T) SmallVec[T, A] {
	var v SmallVec[T, A]
	if len(s) <= len(v.inline) {
		v.n = copy(Slots[T](&v.inline), s)
		return v
	}
	v.heap = s
	return v
}

// FromElem returns a vector holding n copies of x.
func FromElem[T any, A Array[T]](x T, n int) SmallVec[T, A] {
	v := WithCapacity[T, A](n)
	v.Resize(n, x)
	return v
}

// FromBuf returns an inline vector using every slot of a.
func FromBuf[T any, A Array[T]](a A) SmallVec[T, A] {
	return SmallVec[T, A]{inline: a, n: len(a)}
}

// FromBufAndLen returns an inline vector using the first n slots of a.
// It panics if n is out of range for a.
func FromBufAndLen[T any, A Array[T]](a A, n int) SmallVec[T, A] {
	if n < 0 || n > len(a) {
		panic(fmt.Sprintf("smallvec: length %d out of range [0:%d]", n, len(a)))
	}
	v := SmallVec[T, A]{inline: a, n: n}
	clear(Slots[T](&v.inline)[n:])
	return v
}

func (v *SmallVec[T, A]) slots() []T {
	return Slots[T](&v.inline)
}

// Len returns the number of elements.
func (v *SmallVec[T, A]) Len() int {
	if v.heap != nil {
		return len(v.heap)
	}
	return v.n
}

// IsEmpty reports whether the vector holds no elements.
func (v *SmallVec[T, A]) IsEmpty() bool {
	return v.Len() == 0
}

// InlineSize returns the number of elements storable without a heap allocation.
func (v *SmallVec[T, A]) InlineSize() int {
	return len(v.inline)
}

// Spilled reports whether the elements live on the heap.
func (v *SmallVec[T, A]) Spilled() bool {
	return v.heap != nil
}

// Cap returns the number of elements the vector can hold without reallocating.
func (v *SmallVec[T, A]) Cap() int {
	if v.heap != nil {
		return cap(v.heap)
	}
	return len(v.inline)
}

// AsSlice returns a view of the elements. The view is invalidated by any
// operation that changes the length or capacity.
func (v *SmallVec[T, A]) AsSlice() []T {
	if v.heap != nil {
		n := len(v.heap)
		return v.heap[:n:n]
	}
	return v.slots()[:v.n:v.n]
}

// setLen moves the length within the current capacity, zeroing vacated slots.
func (v *SmallVec[T, A]) setLen(n int) {
	if v.heap != nil {
		if n < len(v.heap) {
			clear(v.heap[n:])
		}
		v.heap = v.heap[:n]
		return
	}
	if n < v.n {
		clear(v.slots()[n:v.n])
	}
	v.n = n
}

// Grow reallocates the storage to a capacity of exactly newCap, moving the
// elements back inline when newCap fits there. It panics if newCap < Len.
func (v *SmallVec[T, A]) Grow(newCap int) {
	n := v.Len()
	if newCap < n {
		panic(fmt.Sprintf("smallvec: grow to %d below length %d", newCap, n))
	}
	if newCap <= len(v.inline) {
		if v.heap == nil {
			return
		}
		v.n = copy(v.slots(), v.heap)
		v.heap = nil
		return
	}
	if v.heap != nil && cap(v.heap) == newCap {
		return
	}
	h := make([]T, n, newCap)
	copy(h, v.AsSlice())
	if v.heap == nil {
		clear(v.slots()[:v.n])
		v.n = 0
	}
	v.heap = h
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// maxPow2 is the largest power of two an int can hold.
const maxPow2 = 1 << (bits.UintSize - 2)

// reserveCap returns the capacity needed for additional more elements, or 0
// if the current capacity already suffices.
func (v *SmallVec[T, A]) reserveCap(additional int, exact bool) (int, error) {
	n := v.Len()
	if v.Cap()-n >= additional {
		return 0, nil
	}
	need := n + additional
	if need < n {
		return 0, ErrCapacityOverflow
	}
	if exact {
		return need, nil
	}
	if need > maxPow2 {
		return 0, ErrCapacityOverflow
	}
	return nextPowerOfTwo(need), nil
}

// TryReserve is Reserve reporting ErrCapacityOverflow instead of panicking
// when the new capacity cannot be represented. The vector is unchanged on
// error.
func (v *SmallVec[T, A]) TryReserve(additional int) error {
	c, err := v.reserveCap(additional, false)
	if err != nil {
		return err
	}
	if c > 0 {
		v.Grow(c)
	}
	return nil
}

// TryReserveExact is ReserveExact reporting ErrCapacityOverflow instead of
// panicking.
func (v *SmallVec[T, A]) TryReserveExact(additional int) error {
	c, err := v.reserveCap(additional, true)
	if err != nil {
		return err
	}
	if c > 0 {
		v.Grow(c)
	}
	return nil
}

// Reserve makes room for at least additional more elements, rounding the new
// capacity up to a power of two.
func (v *SmallVec[T, A]) Reserve(additional int) {
	if err := v.TryReserve(additional); err != nil {
		panic(err)
	}
}

// ReserveExact makes room for exactly additional more elements.
func (v *SmallVec[T, A]) ReserveExact(additional int) {
	if err := v.TryReserveExact(additional); err != nil {
		panic(err)
	}
}

// ShrinkToFit releases unused capacity, moving the elements back inline when
// they fit there.
func (v *SmallVec[T, A]) ShrinkToFit() {
	if v.heap == nil {
		return
	}
	v.Grow(len(v.heap))
}

// Push appends x.
func (v *SmallVec[T, A]) Push(x T) {
	v.Reserve(1)
	if v.heap != nil {
		v.heap = append(v.heap, x)
		return
	}
	v.slots()[v.n] = x
	v.n++
}

// Pop removes and returns the last element, or reports false if the vector is empty.
func (v *SmallVec[T, A]) Pop() (T, bool) {
	s := v.AsSlice()
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	x := s[len(s)-1]
	v.setLen(len(s) - 1)
	return x, true
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("smallvec: index %d out of range [0:%d]", i, n))
	}
}

func checkInsert(i, n int) {
	if i < 0 || i > n {
		panic(fmt.Sprintf("smallvec: insertion index %d out of range [0:%d]", i, n))
	}
}

// Insert places x at index i, shifting later elements right.
func (v *SmallVec[T, A]) Insert(i int, x T) {
	n := v.Len()
	checkInsert(i, n)
	v.Reserve(1)
	v.setLen(n + 1)
	s := v.AsSlice()
	copy(s[i+1:], s[i:n])
	s[i] = x
}

// storage returns every slot the vector currently owns, in use or not.
func (v *SmallVec[T, A]) storage() []T {
	if v.heap != nil {
		return v.heap[:cap(v.heap)]
	}
	return v.slots()
}

// overlaps reports whether a and b share any memory.
func overlaps[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	size := unsafe.Sizeof(a[0])
	if size == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b))*size && b0 < a0+uintptr(len(a))*size
}

// InsertFromSlice copies xs into the vector starting at index i. xs may be a
// view of the vector itself.
func (v *SmallVec[T, A]) InsertFromSlice(i int, xs []T) {
	n := v.Len()
	checkInsert(i, n)
	k := len(xs)
	if k == 0 {
		return
	}
	if overlaps(v.storage(), xs) {
		xs = slices.Clone(xs)
	}
	v.Reserve(k)
	v.setLen(n + k)
	s := v.AsSlice()
	copy(s[i+k:], s[i:n])
	copy(s[i:], xs)
}

// InsertMany inserts every element of seq at index i, keeping their order.
func (v *SmallVec[T, A]) InsertMany(i int, seq iter.Seq[T]) {
	checkInsert(i, v.Len())
	v.InsertFromSlice(i, slices.Collect(seq))
}

// ExtendFromSlice appends a copy of xs.
func (v *SmallVec[T, A]) ExtendFromSlice(xs []T) {
	v.InsertFromSlice(v.Len(), xs)
}

// Extend appends every element of seq. seq is drained before the vector
// changes, so it may iterate over the vector itself.
func (v *SmallVec[T, A]) Extend(seq iter.Seq[T]) {
	v.InsertFromSlice(v.Len(), slices.Collect(seq))
}

// Append moves every element of other to the end of v, leaving other empty.
// Appending a vector to itself does nothing.
func (v *SmallVec[T, A]) Append(other *SmallVec[T, A]) {
	if other == v {
		return
	}
	v.ExtendFromSlice(other.AsSlice())
	other.Clear()
}

// Remove deletes and returns the element at index i, shifting later elements left.
func (v *SmallVec[T, A]) Remove(i int) T {
	s := v.AsSlice()
	checkIndex(i, len(s))
	x := s[i]
	copy(s[i:], s[i+1:])
	v.setLen(len(s) - 1)
	return x
}

// SwapRemove deletes and returns the element at index i, moving the last
// element into its place.
func (v *SmallVec[T, A]) SwapRemove(i int) T {
	s := v.AsSlice()
	checkIndex(i, len(s))
	x := s[i]
	last := len(s) - 1
	s[i] = s[last]
	v.setLen(last)
	return x
}

// Truncate shortens the vector to n elements. It does nothing if n >= Len.
func (v *SmallVec[T, A]) Truncate(n int) {
	if n < 0 {
		panic(fmt.Sprintf("smallvec: truncate to negative length %d", n))
	}
	if n < v.Len() {
		v.setLen(n)
	}
}

// Clear removes every element, keeping the allocation.
func (v *SmallVec[T, A]) Clear() {
	v.setLen(0)
}

// Resize changes the length to n, filling new slots with x.
func (v *SmallVec[T, A]) Resize(n int, x T) {
	v.ResizeWith(n, func() T { return x })
}

// ResizeWith changes the length to n, filling new slots with values from f.
func (v *SmallVec[T, A]) ResizeWith(n int, f func() T) {
	old := v.Len()
	if n < 0 {
		panic(fmt.Sprintf("smallvec: resize to negative length %d", n))
	}
	if n <= old {
		v.setLen(n)
		return
	}
	v.Reserve(n - old)
	v.setLen(n)
	s := v.AsSlice()
	for i := old; i < n; i++ {
		s[i] = f()
	}
}

// DedupFunc collapses runs of consecutive elements for which eq reports true
// into their first element.
func (v *SmallVec[T, A]) DedupFunc(eq func(a, b T) bool) {
	v.setLen(len(slices.CompactFunc(v.AsSlice(), eq)))
}

// Dedup collapses runs of consecutive equal elements.
func Dedup[T comparable, A Array[T]](v *SmallVec[T, A]) {
	v.setLen(len(slices.Compact(v.AsSlice())))
}

// DedupByKey collapses runs of consecutive elements mapping to the same key.
func DedupByKey[T any, A Array[T], K comparable](v *SmallVec[T, A], key func(T) K) {
	v.DedupFunc(func(a, b T) bool { return key(a) == key(b) })
}

// At returns the element at index i.
func (v *SmallVec[T, A]) At(i int) T {
	return v.AsSlice()[i]
}

// Set replaces the element at index i.
func (v *SmallVec[T, A]) Set(i int, x T) {
	v.AsSlice()[i] = x
}

// First returns the first element, or false if the vector is empty.
func (v *SmallVec[T, A]) First() (T, bool) {
	s := v.AsSlice()
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[0], true
}

// Last returns the last element, or false if the vector is empty.
func (v *SmallVec[T, A]) Last() (T, bool) {
	s := v.AsSlice()
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

// All returns an iterator over index/element pairs.
func (v *SmallVec[T, A]) All() iter.Seq2[int, T] {
	return slices.All(v.AsSlice())
}

// Values returns an iterator over the elements.
func (v *SmallVec[T, A]) Values() iter.Seq[T] {
	return slices.Values(v.AsSlice())
}

// Take moves the contents out, leaving v empty.
func (v *SmallVec[T, A]) Take() SmallVec[T, A] {
	t := *v
	*v = SmallVec[T, A]{}
	return t
}

// Clone returns an independent copy.
func (v *SmallVec[T, A]) Clone() SmallVec[T, A] {
	return FromSlice[T, A](v.AsSlice())
}

// IntoVec moves the elements into a plain heap slice, leaving v empty.
// Spilled storage is handed over without copying.
func (v *SmallVec[T, A]) IntoVec() []T {
	if v.heap != nil {
		h := v.heap
		v.heap = nil
		return h
	}
	out := make([]T, v.n)
	copy(out, v.slots())
	v.setLen(0)
	return out
}

// IntoInner moves the elements into an array of the inline shape. It only
// succeeds if Len equals InlineSize; otherwise v is left untouched.
func (v *SmallVec[T, A]) IntoInner() (A, bool) {
	var a A
	if v.Len() != len(a) {
		return a, false
	}
	copy(Slots[T](&a), v.AsSlice())
	*v = SmallVec[T, A]{}
	return a, true
}

// String renders the elements like a slice.
func (v *SmallVec[T, A]) String() string {
	return fmt.Sprint(v.AsSlice())
}

// Format implements fmt.Formatter.
func (v *SmallVec[T, A]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), v.AsSlice())
}
