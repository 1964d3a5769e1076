package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ProtoInt64Codec serializes an int64 as a google.protobuf.Int64Value message
type ProtoInt64Codec struct{}

// ProtoInt64 returns a ProtoInt64Codec
func ProtoInt64() ProtoInt64Codec {
	return ProtoInt64Codec{}
}

// Encode serializes an int64
func (ProtoInt64Codec) Encode(v int64) ([]byte, error) {
	return proto.Marshal(wrapperspb.Int64(v))
}

// Decode produces an int64 from serialized data
func (ProtoInt64Codec) Decode(buff []byte) (int64, error) {
	msg := &wrapperspb.Int64Value{}
	if err := proto.Unmarshal(buff, msg); err != nil {
		return 0, err
	}
	return msg.GetValue(), nil
}

// ProtoDoubleCodec serializes a float64 as a google.protobuf.DoubleValue message
type ProtoDoubleCodec struct{}

// ProtoDouble returns a ProtoDoubleCodec
func ProtoDouble() ProtoDoubleCodec {
	return ProtoDoubleCodec{}
}

// Encode serializes a float64
func (ProtoDoubleCodec) Encode(v float64) ([]byte, error) {
	return proto.Marshal(wrapperspb.Double(v))
}

// Decode produces a float64 from serialized data
func (ProtoDoubleCodec) Decode(buff []byte) (float64, error) {
	msg := &wrapperspb.DoubleValue{}
	if err := proto.Unmarshal(buff, msg); err != nil {
		return 0, err
	}
	return msg.GetValue(), nil
}
