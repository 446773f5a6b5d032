package sampler

import "errors"

var (
	// ErrPortNotFound means auto-discovery ran and produced no candidate.
	ErrPortNotFound = errors.New("no serial port found")
	// ErrPortUnavailable means the configured device could not be opened.
	ErrPortUnavailable = errors.New("serial port unavailable")
	// ErrDeviceClosed means the device dropped mid-session. The read loop
	// logs it and exits; the rest of the pipeline falls back to local input.
	ErrDeviceClosed = errors.New("device closed unexpectedly")
)
