package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"guild-tracker/internal/constants"

	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

// ErrNotFound reports an upstream 404 so callers can branch on "entity does
// not exist" instead of treating it as a failed call.
var ErrNotFound = errors.New("upstream resource not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

type Options struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// RetryableStatuses overrides the default retryable set when non-nil.
	RetryableStatuses map[int]bool
}

func DefaultOptions() Options {
	return Options{
		MaxRetries: constants.RetryMaxAttempts,
		BaseDelay:  constants.RetryBaseDelay,
		MaxDelay:   constants.RetryMaxDelay,
	}
}

func (o Options) retryable(status int) bool {
	if o.RetryableStatuses != nil {
		return o.RetryableStatuses[status]
	}
	switch status {
	case fasthttp.StatusRequestTimeout,
		fasthttp.StatusTooManyRequests,
		fasthttp.StatusInternalServerError,
		fasthttp.StatusBadGateway,
		fasthttp.StatusServiceUnavailable,
		fasthttp.StatusGatewayTimeout:
		return true
	}
	return false
}

// Backoff returns the retry schedule: exponential growth from BaseDelay,
// capped at MaxDelay, plus uniform additive jitter of up to 25% of the
// capped delay.
func (o Options) Backoff() retry.Backoff {
	attempt := 0
	return retry.WithMaxRetries(o.MaxRetries, retry.BackoffFunc(func() (time.Duration, bool) {
		delay := o.BaseDelay << attempt
		if delay <= 0 || delay > o.MaxDelay {
			delay = o.MaxDelay
		}
		attempt++

		jitter := time.Duration(rand.Int63n(int64(delay)/4 + 1))
		return delay + jitter, false
	}))
}

// Do issues the request, retrying transient failures (network errors and
// retryable status codes) with bounded exponential backoff. Non-retryable
// HTTP errors propagate immediately with no further attempts. The caller
// owns req and resp; on success resp holds the final attempt's result.
func Do(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, resp *fasthttp.Response, opts Options) error {
	return retry.Do(ctx, opts.Backoff(), func(ctx context.Context) error {
		resp.Reset()

		var err error
		if deadline, ok := ctx.Deadline(); ok {
			err = client.DoDeadline(req, resp, deadline)
		} else {
			err = client.Do(req, resp)
		}
		if err != nil {
			return retry.RetryableError(fmt.Errorf("request failed: %w", err))
		}

		status := resp.StatusCode()
		switch {
		case status == fasthttp.StatusNotFound:
			return ErrNotFound
		case opts.retryable(status):
			return retry.RetryableError(&StatusError{Status: status})
		case status >= fasthttp.StatusBadRequest:
			return &StatusError{Status: status}
		}
		return nil
	})
}
