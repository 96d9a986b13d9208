// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedBitDepth  = errors.New("unsupported WAV bit depth")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	ErrInvalidChannels      = errors.New("channel count must be positive")
)
