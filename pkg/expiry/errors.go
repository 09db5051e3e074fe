package expiry

import "errors"

// ErrDecode is returned when input bytes cannot be decoded as an image.
// It is fatal for the call and never retried here; the caller decides
// whether to retry with fresh input.
var ErrDecode = errors.New("image decode failed")
