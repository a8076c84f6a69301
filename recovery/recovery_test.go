// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_NoPanic(t *testing.T) {
	t.Parallel()

	v, err := Capture(func() (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCapture_ErrorPassthrough(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("validator said no")
	v, err := Capture(func() (any, error) {
		return nil, sentinel
	})
	assert.Nil(t, v)
	assert.ErrorIs(t, err, sentinel)
}

func TestCapture_PanicWithString(t *testing.T) {
	t.Parallel()

	v, err := Capture(func() (any, error) {
		panic("boom")
	})
	assert.Nil(t, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic during validation")
	assert.Contains(t, err.Error(), "boom")
}

func TestCapture_PanicWithError(t *testing.T) {
	t.Parallel()

	cause := errors.New("nil map write")
	v, err := Capture(func() (any, error) {
		panic(cause)
	})
	assert.Nil(t, v)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause, "error panics remain matchable via errors.Is")
}
