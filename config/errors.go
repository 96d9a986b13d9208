// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidSlot        = errors.New("invalid slot")
	ErrDuplicateKeyPair   = errors.New("key pair assigned twice")
)
