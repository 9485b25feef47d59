package v1alpha1

import "errors"

// ErrInvalidMode is returned when an invalid client mode is specified.
var ErrInvalidMode = errors.New("invalid client mode")
