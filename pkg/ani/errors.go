package ani

import "errors"

var (
	ErrMalformedContainer   = errors.New("malformed RIFF container")
	ErrInvalidHeader        = errors.New("invalid anih header")
	ErrUnsupportedFormat    = errors.New("unsupported animated cursor format")
	ErrInconsistentTimeline = errors.New("inconsistent animation timeline")
)
