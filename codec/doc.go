// Package codec provides serializers for accumulator aggregates, so that a worker's partial result can
// be shipped to the owner as bytes and merged there.
package codec
