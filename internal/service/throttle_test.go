// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPINThrottle_BurstThenCooldown(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	th := NewPINThrottle(3, 30*time.Second)
	th.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		require.NoError(t, th.Check())
		th.Failure()
	}

	err := th.Check()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrThrottled))

	var te *ThrottleError
	require.True(t, errors.As(err, &te))
	require.InDelta(t, float64(30*time.Second), float64(te.RetryAfter), float64(time.Second))

	now = now.Add(31 * time.Second)
	require.NoError(t, th.Check())
	require.Equal(t, 1, th.Remaining())
}

func TestPINThrottle_Disabled(t *testing.T) {
	th := NewPINThrottle(1, 0)
	for i := 0; i < 10; i++ {
		th.Failure()
	}
	require.NoError(t, th.Check())
	require.Equal(t, -1, th.Remaining())

	var nilThrottle *PINThrottle
	require.NoError(t, nilThrottle.Check())
	nilThrottle.Failure()
}

func TestThrottleError_Message(t *testing.T) {
	err := &ThrottleError{RetryAfter: 12400 * time.Millisecond}
	require.Equal(t, "too many incorrect PINs: try again in 12s", err.Error())
}
