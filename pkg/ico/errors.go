package ico

import "errors"

var (
	ErrMalformedResource   = errors.New("malformed icon resource")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrTruncatedPixelData  = errors.New("truncated pixel data")
	ErrDecode              = errors.New("image decode failed")
)
