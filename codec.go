package accum

// A Codec serializes aggregates, so that a worker's local buffer may cross a process boundary before
// being merged. Implementations live in the codec package.
type Codec[R any] interface {
	Encode(r R) ([]byte, error)   // Encode serializes an aggregate
	Decode(buf []byte) (R, error) // Decode produces an aggregate from serialized data
}
