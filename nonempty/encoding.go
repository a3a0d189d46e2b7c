package nonempty

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quickwritereader/nonempty/smallvec"
)

// maxPrealloc bounds the capacity reserved from a decoded length header.
const maxPrealloc = 1024

var (
	_ json.Marshaler        = SmallVec1[int, [1]int]{}
	_ json.Unmarshaler      = (*SmallVec1[int, [1]int])(nil)
	_ msgpack.CustomEncoder = SmallVec1[int, [1]int]{}
	_ msgpack.CustomDecoder = (*SmallVec1[int, [1]int])(nil)
)

// MarshalJSON encodes the elements as a JSON array. The inline shape is not
// encoded. It has a value receiver so that a SmallVec1 held by value in a
// struct field is encoded too.
func (v SmallVec1[T, A]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.AsSlice())
}

// UnmarshalJSON decodes a JSON array. An empty array or null fails with
// ErrEmpty and leaves v untouched.
func (v *SmallVec1[T, A]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("decode json: %w", ErrEmpty)
	}
	v.buf = smallvec.FromVec[T, A](items)
	return nil
}

// EncodeMsgpack encodes the elements as a MessagePack array.
func (v SmallVec1[T, A]) EncodeMsgpack(enc *msgpack.Encoder) error {
	s := v.AsSlice()
	if err := enc.EncodeArrayLen(len(s)); err != nil {
		return err
	}
	for i := range s {
		if err := enc.Encode(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack decodes a MessagePack array. An empty array or nil fails with
// ErrEmpty and leaves v untouched.
func (v *SmallVec1[T, A]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("decode msgpack: %w", ErrEmpty)
	}
	buf := smallvec.WithCapacity[T, A](min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var x T
		if err := dec.Decode(&x); err != nil {
			return err
		}
		buf.Push(x)
	}
	v.buf = buf
	return nil
}
