// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"fmt"
)

// Capture runs fn and converts any panic into an error. A panicking
// externally supplied validator must never take down a whole batch
// validation pass.
//
// If fn panics with an error value, that error is wrapped; any other
// panic value is formatted into the error message.
func Capture(fn func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("panic during validation: %w", perr)
				return
			}
			err = fmt.Errorf("panic during validation: %v", r)
		}
	}()
	return fn()
}
