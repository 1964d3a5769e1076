package codec

import (
	"bytes"
	"encoding/gob"
)

// GobCodec serializes any gob-encodable aggregate
type GobCodec[R any] struct{}

// Gob returns a GobCodec for R
func Gob[R any]() GobCodec[R] {
	return GobCodec[R]{}
}

// Encode serializes an aggregate
func (GobCodec[R]) Encode(v R) ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(&v)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Decode produces an aggregate from serialized data
func (GobCodec[R]) Decode(buff []byte) (R, error) {
	var v R
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	err := d.Decode(&v)
	if err != nil {
		return v, err
	}
	return v, nil
}
