// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF audio using github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 and 32 bits are normalised to float32 in [-1, 1).
// The frame count comes from the COMM chunk, so audio.ReadAll sizes its
// buffer exactly. Compressed AIFF-C is not supported.
package aiff
