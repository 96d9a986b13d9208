// SPDX-License-Identifier: EPL-2.0

package rrlite

import "errors"

// ErrNotLoaded is returned when exporting a sound that holds no audio.
var ErrNotLoaded = errors.New("sound is not loaded")
