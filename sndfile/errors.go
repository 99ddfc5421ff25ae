// SPDX-License-Identifier: EPL-2.0

package sndfile

import "errors"

var (
	ErrUnknownFormat    = errors.New("no decoder registered for format")
	ErrInvalidFile      = errors.New("file failed container validation")
	ErrUnsupportedDepth = errors.New("unsupported PCM bit depth")
	ErrNegativeSeek     = errors.New("seek to negative frame index")
)
