package nonempty

import (
	"cmp"
	"hash/maphash"
	"slices"

	"github.com/quickwritereader/nonempty/smallvec"
)

// Inline shapes are never part of identity: containers declared with
// different A compare by their elements only.

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable, A smallvec.Array[T], B smallvec.Array[T]](a *SmallVec1[T, A], b *SmallVec1[T, B]) bool {
	return slices.Equal(a.AsSlice(), b.AsSlice())
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T1, T2 any, A smallvec.Array[T1], B smallvec.Array[T2]](a *SmallVec1[T1, A], b *SmallVec1[T2, B], eq func(T1, T2) bool) bool {
	return slices.EqualFunc(a.AsSlice(), b.AsSlice(), eq)
}

// Compare orders a and b lexicographically.
func Compare[T cmp.Ordered, A smallvec.Array[T], B smallvec.Array[T]](a *SmallVec1[T, A], b *SmallVec1[T, B]) int {
	return slices.Compare(a.AsSlice(), b.AsSlice())
}

// CompareFunc is like Compare but compares elements with c.
func CompareFunc[T1, T2 any, A smallvec.Array[T1], B smallvec.Array[T2]](a *SmallVec1[T1, A], b *SmallVec1[T2, B], c func(T1, T2) int) int {
	return slices.CompareFunc(a.AsSlice(), b.AsSlice(), c)
}

// Hash returns a hash of the elements of v. It equals HashSlice of a slice
// with the same elements.
func Hash[T comparable, A smallvec.Array[T]](seed maphash.Seed, v *SmallVec1[T, A]) uint64 {
	return HashSlice(seed, v.AsSlice())
}

// HashSlice hashes the length and elements of s.
func HashSlice[T comparable](seed maphash.Seed, s []T) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	maphash.WriteComparable(&h, len(s))
	for _, x := range s {
		maphash.WriteComparable(&h, x)
	}
	return h.Sum64()
}
