// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrThrottled is matched by every *ThrottleError.
var ErrThrottled = errors.New("too many incorrect PINs")

// ThrottleError reports that PIN checks are paused.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("%v: try again in %s", ErrThrottled, e.RetryAfter.Round(time.Second))
}

// Is lets errors.Is match ErrThrottled.
func (e *ThrottleError) Is(target error) bool {
	return target == ErrThrottled
}

// PINThrottle limits wrong PIN guesses. Up to maxFailures wrong PINs are
// accepted in a burst; after that one more guess becomes available per
// cooldown. Correct PINs never consume budget.
type PINThrottle struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	cooldown time.Duration
	disabled bool
	now      func() time.Time
}

// NewPINThrottle creates a throttle. A cooldown of zero or less disables it.
func NewPINThrottle(maxFailures int, cooldown time.Duration) *PINThrottle {
	if maxFailures < 1 {
		maxFailures = 1
	}
	t := &PINThrottle{
		cooldown: cooldown,
		disabled: cooldown <= 0,
		now:      time.Now,
	}
	if !t.disabled {
		t.limiter = rate.NewLimiter(rate.Every(cooldown), maxFailures)
	}
	return t
}

// Check returns a *ThrottleError when no guess is available right now.
func (t *PINThrottle) Check() error {
	if t == nil || t.disabled {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	tokens := t.limiter.TokensAt(t.now())
	if tokens >= 1 {
		return nil
	}
	wait := time.Duration((1 - tokens) * float64(t.cooldown))
	return &ThrottleError{RetryAfter: wait}
}

// Failure spends one guess.
func (t *PINThrottle) Failure() {
	if t == nil || t.disabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limiter.AllowN(t.now(), 1)
}

// Remaining reports how many wrong PINs may be entered right now.
func (t *PINThrottle) Remaining() int {
	if t == nil || t.disabled {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.limiter.TokensAt(t.now()))
}
