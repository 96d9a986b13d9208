// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidChannels is returned when a source reports fewer than one channel.
	ErrInvalidChannels = errors.New("channel count must be positive")
	// ErrInvalidSampleRate is returned when a source reports a non-positive rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	// ErrTruncatedSource is returned when a stream ends well before the
	// length it reported.
	ErrTruncatedSource = errors.New("source ended before its reported length")
)
