// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/rrlite/utils"
)

// WriteFloat32 writes mono float samples as a 16-bit AIFF stream. The
// encoder patches chunk sizes on Close, hence the io.WriteSeeker.
func WriteFloat32(w io.WriteSeeker, sampleRate int, samples []float32) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	enc := aiff.NewEncoder(w, sampleRate, 16, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing aiff data: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalising aiff: %w", err)
	}

	return nil
}
