// Package codec binds SmallVec1 to the serialization libraries used across
// the module: go-json, json-iterator, MessagePack and MUS.
package codec

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes values to bytes and back. Values implementing the JSON or
// MessagePack marshaler interfaces, such as *nonempty.SmallVec1, keep their
// own validation when passed through a Codec.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type goJSON struct{}

func (goJSON) Name() string                       { return "go-json" }
func (goJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (goJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

type jsonIter struct {
	api jsoniter.API
}

func (jsonIter) Name() string                         { return "json-iterator" }
func (c jsonIter) Marshal(v any) ([]byte, error)      { return c.api.Marshal(v) }
func (c jsonIter) Unmarshal(data []byte, v any) error { return c.api.Unmarshal(data, v) }

type msgPack struct{}

func (msgPack) Name() string                       { return "msgpack" }
func (msgPack) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgPack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

var (
	GoJSON   Codec = goJSON{}
	JSONIter Codec = jsonIter{api: jsoniter.ConfigCompatibleWithStandardLibrary}
	MsgPack  Codec = msgPack{}
)

// All returns every registered codec.
func All() []Codec {
	return []Codec{GoJSON, JSONIter, MsgPack}
}

// Encode marshals v with c, naming the codec in any error.
func Encode(c Codec, v any) ([]byte, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec %s: encode: %w", c.Name(), err)
	}
	return data, nil
}

// Decode unmarshals data into v with c, naming the codec in any error.
func Decode(c Codec, data []byte, v any) error {
	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec %s: decode: %w", c.Name(), err)
	}
	return nil
}
