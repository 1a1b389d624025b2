package metadata

import "errors"

var (
	ErrInvalidChannelCount = errors.New("channel count must be between 1 and 4")
	ErrPixelDataSize       = errors.New("pixel data does not match texture size")
)
