package codec

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/varint"

	"github.com/quickwritereader/nonempty/nonempty"
	"github.com/quickwritereader/nonempty/smallvec"
	"github.com/quickwritereader/nonempty/utils"
)

// ErrTrailingBytes is returned by UnmarshalMus when data holds more than one value.
var ErrTrailingBytes = errors.New("codec: trailing bytes after value")

// maxPrealloc bounds the capacity reserved from a decoded length prefix.
const maxPrealloc = 1024

var scratch = utils.NewBufferPool()

// MusSerializer is a mus.Serializer for SmallVec1. The encoding is a varint
// length followed by the elements; a zero length is rejected on decode.
type MusSerializer[T any, A smallvec.Array[T]] struct {
	elem mus.Serializer[T]
}

var _ mus.Serializer[*nonempty.SmallVec1[int, [1]int]] = MusSerializer[int, [1]int]{}

// NewMusSerializer returns a serializer encoding each element with elem.
func NewMusSerializer[T any, A smallvec.Array[T]](elem mus.Serializer[T]) MusSerializer[T, A] {
	return MusSerializer[T, A]{elem: elem}
}

func (s MusSerializer[T, A]) Marshal(v *nonempty.SmallVec1[T, A], bs []byte) (n int) {
	items := v.AsSlice()
	n = varint.PositiveInt.Marshal(len(items), bs)
	for _, x := range items {
		n += s.elem.Marshal(x, bs[n:])
	}
	return n
}

func (s MusSerializer[T, A]) Unmarshal(bs []byte) (v *nonempty.SmallVec1[T, A], n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length <= 0 {
		return nil, n, fmt.Errorf("decode mus: %w", nonempty.ErrEmpty)
	}
	items := make([]T, 0, min(length, maxPrealloc))
	for i := 0; i < length; i++ {
		x, m, err := s.elem.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		items = append(items, x)
	}
	v, err = nonempty.TryFromVec[T, A](items)
	return v, n, err
}

func (s MusSerializer[T, A]) Size(v *nonempty.SmallVec1[T, A]) (size int) {
	items := v.AsSlice()
	size = varint.PositiveInt.Size(len(items))
	for _, x := range items {
		size += s.elem.Size(x)
	}
	return size
}

func (s MusSerializer[T, A]) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return n, err
	}
	if length <= 0 {
		return n, fmt.Errorf("skip mus: %w", nonempty.ErrEmpty)
	}
	for i := 0; i < length; i++ {
		m, err := s.elem.Skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Encode is MarshalMus with s.
func (s MusSerializer[T, A]) Encode(v *nonempty.SmallVec1[T, A]) []byte {
	return MarshalMus[*nonempty.SmallVec1[T, A]](s, v)
}

// Decode is UnmarshalMus with s.
func (s MusSerializer[T, A]) Decode(data []byte) (*nonempty.SmallVec1[T, A], error) {
	return UnmarshalMus[*nonempty.SmallVec1[T, A]](s, data)
}

// MarshalMus encodes v into a pooled scratch buffer and returns a copy sized
// to the encoding.
func MarshalMus[V any](ser mus.Serializer[V], v V) []byte {
	buf := scratch.Acquire(ser.Size(v))
	n := ser.Marshal(v, buf.B)
	out := make([]byte, n)
	copy(out, buf.B[:n])
	scratch.Release(buf)
	return out
}

// UnmarshalMus decodes exactly one value from data.
func UnmarshalMus[V any](ser mus.Serializer[V], data []byte) (V, error) {
	v, n, err := ser.Unmarshal(data)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("codec mus: decode: %w", err)
	}
	if n != len(data) {
		var zero V
		return zero, fmt.Errorf("codec mus: %w: %d of %d bytes used", ErrTrailingBytes, n, len(data))
	}
	return v, nil
}
