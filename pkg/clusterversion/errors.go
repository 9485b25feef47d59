package clusterversion

import "errors"

// ErrMalformedSpec is returned when the document's spec field is not an object.
var ErrMalformedSpec = errors.New("cluster version spec is not an object")

// ErrMalformedOverrides is returned when spec.overrides is not a list.
var ErrMalformedOverrides = errors.New("cluster version spec.overrides is not a list")
