package buffer

import "errors"

var (
	ErrInvalidChannels = errors.New("channel count must be between 1 and 4")
	ErrWrappedSize     = errors.New("wrapped memory does not match buffer size")
	ErrShapeMismatch   = errors.New("pixel buffers differ in shape")
)
