package nonempty

import (
	"iter"

	"github.com/quickwritereader/nonempty/smallvec"
)

// Len returns the number of elements, which is always at least 1.
func (v *SmallVec1[T, A]) Len() int {
	return v.vec().Len()
}

// Cap returns the number of elements storable without reallocating.
func (v *SmallVec1[T, A]) Cap() int {
	return v.vec().Cap()
}

// InlineSize returns the number of elements storable without a heap allocation.
func (v *SmallVec1[T, A]) InlineSize() int {
	return v.buf.InlineSize()
}

// Spilled reports whether the elements live on the heap.
func (v *SmallVec1[T, A]) Spilled() bool {
	return v.vec().Spilled()
}

// AsSlice returns a view of the elements. Elements can be modified through
// it but its length is fixed; it is invalidated by any length change.
func (v *SmallVec1[T, A]) AsSlice() []T {
	return v.vec().AsSlice()
}

// At returns the element at index i.
func (v *SmallVec1[T, A]) At(i int) T {
	return v.vec().At(i)
}

// Set replaces the element at index i.
func (v *SmallVec1[T, A]) Set(i int, x T) {
	v.vec().Set(i, x)
}

// See smallvec.SmallVec.Reserve.
func (v *SmallVec1[T, A]) Reserve(additional int) {
	v.vec().Reserve(additional)
}

// See smallvec.SmallVec.ReserveExact.
func (v *SmallVec1[T, A]) ReserveExact(additional int) {
	v.vec().ReserveExact(additional)
}

// See smallvec.SmallVec.TryReserve.
func (v *SmallVec1[T, A]) TryReserve(additional int) error {
	return v.vec().TryReserve(additional)
}

// See smallvec.SmallVec.TryReserveExact.
func (v *SmallVec1[T, A]) TryReserveExact(additional int) error {
	return v.vec().TryReserveExact(additional)
}

// See smallvec.SmallVec.Grow.
func (v *SmallVec1[T, A]) Grow(newCap int) {
	v.vec().Grow(newCap)
}

// See smallvec.SmallVec.ShrinkToFit.
func (v *SmallVec1[T, A]) ShrinkToFit() {
	v.vec().ShrinkToFit()
}

// Push appends x.
func (v *SmallVec1[T, A]) Push(x T) {
	v.vec().Push(x)
}

// Insert places x at index i, shifting later elements right.
// It panics if i is greater than Len.
func (v *SmallVec1[T, A]) Insert(i int, x T) {
	v.vec().Insert(i, x)
}

// InsertMany inserts every element of seq at index i.
func (v *SmallVec1[T, A]) InsertMany(i int, seq iter.Seq[T]) {
	v.vec().InsertMany(i, seq)
}

// InsertFromSlice copies xs into the container starting at index i.
func (v *SmallVec1[T, A]) InsertFromSlice(i int, xs []T) {
	v.vec().InsertFromSlice(i, xs)
}

// ExtendFromSlice appends a copy of xs, which may be a view of the container.
func (v *SmallVec1[T, A]) ExtendFromSlice(xs []T) {
	v.vec().ExtendFromSlice(xs)
}

// Extend appends every element of seq.
func (v *SmallVec1[T, A]) Extend(seq iter.Seq[T]) {
	v.vec().Extend(seq)
}

// Append moves every element of other to the end, leaving other empty.
// Passing the container's own AsSmallVec view does nothing.
func (v *SmallVec1[T, A]) Append(other *smallvec.SmallVec[T, A]) {
	v.vec().Append(other)
}

// DedupFunc collapses runs of consecutive elements for which eq reports true.
// A non-empty run always keeps its first element, so this never empties the
// container.
func (v *SmallVec1[T, A]) DedupFunc(eq func(a, b T) bool) {
	v.vec().DedupFunc(eq)
}

// Dedup collapses runs of consecutive equal elements.
func Dedup[T comparable, A smallvec.Array[T]](v *SmallVec1[T, A]) {
	smallvec.Dedup(v.vec())
}

// DedupByKey collapses runs of consecutive elements mapping to the same key.
func DedupByKey[T any, A smallvec.Array[T], K comparable](v *SmallVec1[T, A], key func(T) K) {
	smallvec.DedupByKey(v.vec(), key)
}

// All returns an iterator over index/element pairs.
func (v *SmallVec1[T, A]) All() iter.Seq2[int, T] {
	return v.vec().All()
}

// Values returns an iterator over the elements.
func (v *SmallVec1[T, A]) Values() iter.Seq[T] {
	return v.vec().Values()
}

// Clone returns an independent copy.
func (v *SmallVec1[T, A]) Clone() *SmallVec1[T, A] {
	return &SmallVec1[T, A]{buf: v.vec().Clone()}
}
