// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/rrlite/utils"
)

// Resampler streams src at a different sample rate using Catmull-Rom
// interpolation over a four-frame window. Channel count is preserved.
// When downsampling, a one-pole low-pass runs on the input first.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// win[0..3] hold frames t-1, t, t+1, t+2; pos is the fractional
	// position between win[1] and win[2].
	win  [4][]float32
	have [4]bool
	pos  float64

	primed bool
	eof    bool
	frame  []float32

	lowpass bool
	seeded  bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowpass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Frames estimates the output length from the source length.
func (r *Resampler) Frames() int64 {
	n := Frames(r.src)
	if n < 0 {
		return -1
	}

	return int64(math.Ceil(float64(n) / r.step))
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// readFrame pulls one frame from src into r.frame.
func (r *Resampler) readFrame() (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	if n < r.channels {
		return false, nil
	}

	if r.lowpass && !r.seeded {
		// seed the filter with the first frame to avoid a fade-in
		copy(r.state, r.frame)
		r.seeded = true
	} else if r.lowpass {
		for c, v := range r.frame {
			r.state[c] = r.alpha*v + (1-r.alpha)*r.state[c]
			r.frame[c] = r.state[c]
		}
	}

	return true, nil
}

// prime loads the first frames. win[0] stays empty so the first output
// frame is the first source frame.
func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < len(r.win); i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}

		if !ok {
			if i == 1 {
				return io.EOF
			}

			return nil
		}

		copy(r.win[i], r.frame)
		r.have[i] = true
	}

	return nil
}

// advance shifts the window left by one frame.
func (r *Resampler) advance() error {
	first := r.win[0]
	copy(r.win[:], r.win[1:])
	r.win[3] = first
	copy(r.have[:], r.have[1:])
	r.have[3] = false

	ok, err := r.readFrame()
	if err != nil {
		return err
	}

	if ok {
		copy(r.win[3], r.frame)
		r.have[3] = true
	}

	if !r.have[1] {
		return io.EOF
	}

	return nil
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.have[1] {
			return written * r.channels, io.EOF
		}

		// missing neighbours repeat the edge frame
		y1 := r.win[1]
		y0, y2, y3 := r.win[0], r.win[2], r.win[3]
		if !r.have[0] {
			y0 = y1
		}
		if !r.have[2] {
			y2 = y1
		}
		if !r.have[3] {
			y3 = y2
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		x := float32(r.pos)
		for c := range out {
			out[c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
