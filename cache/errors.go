package cache

import (
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCapacity is returned by New for a negative capacity.
	ErrInvalidCapacity = errors.New("cache: capacity must be >= 0")

	// ErrNilProducer is returned by ComputeIfAbsent when no Producer is given.
	ErrNilProducer = errors.New("cache: nil producer")

	// ErrNilKey is returned when a nil key is offered for storage.
	ErrNilKey = errors.New("cache: nil key")

	// ErrInvalidKey is returned for keys that are not equal to themselves
	// (NaN, or structs and arrays holding one). Such keys cannot be found
	// again in the index and so could never be evicted.
	ErrInvalidKey = errors.New("cache: key is not equal to itself")

	// ErrNilValue is returned when a nil value is offered for storage.
	ErrNilValue = errors.New("cache: nil value")

	// ErrReentrantCompute is returned when a Producer calls ComputeIfAbsent
	// for the key it is producing.
	ErrReentrantCompute = errors.New("cache: producer re-entered ComputeIfAbsent for its own key")
)

// checkKey validates a key offered for storage.
func checkKey[K comparable](k K) error {
	if isNil(k) {
		return ErrNilKey
	}
	if k != k { // NaN
		return ErrInvalidKey
	}
	return nil
}

// isNil reports whether x is a nil interface, or a nil pointer, map, slice,
// func or channel. Plain value types are never nil.
func isNil[T any](x T) bool {
	a := any(x)
	if a == nil {
		return true
	}
	switch rv := reflect.ValueOf(a); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
