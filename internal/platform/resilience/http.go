// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resilience

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient wraps an [http.Client] with retry, per-attempt timeout and
// circuit-breaker logic.
//
// Responses with a status below 500 are returned to the caller as-is; 5xx
// responses and transport errors count as failures and are retried.
type HTTPClient struct {
	Client      *http.Client
	Breaker     *Breaker
	BaseBackoff time.Duration
	MaxAttempts int
	Jitter      float64
	Timeout     time.Duration
}

// Do executes the request applying retry semantics. The request body is
// buffered so it can be replayed. When the breaker refuses the call
// [ErrOpenCircuit] is returned.
func (client HTTPClient) Do(ctx context.Context, request *http.Request) (*http.Response, error) {
	if client.Client == nil {
		return nil, errors.New("resilience: http client not configured")
	}

	breaker := client.Breaker
	if breaker == nil {
		breaker = NewBreaker(1, 1, time.Second)
	}
	maxAttempts := max(client.MaxAttempts, 1)
	baseBackoff := client.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}
	target := breaker.targetLabel()

	body, err := readBody(request)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if !breaker.Allow(ctx) {
			OutboundRequests.WithLabelValues(target, "rejected").Inc()
			lastErr = ErrOpenCircuit
			break
		}

		response, err := client.doOnce(ctx, request, body)
		if err == nil && response.StatusCode < http.StatusInternalServerError {
			breaker.Report(ctx, true)
			OutboundRequests.WithLabelValues(target, "ok").Inc()
			return response, nil
		}

		if err == nil {
			lastErr = fmt.Errorf("resilience: upstream status %s", response.Status)
			_ = response.Body.Close()
		} else {
			lastErr = err
		}
		breaker.Report(ctx, false)

		if attempt == maxAttempts {
			OutboundRequests.WithLabelValues(target, "error").Inc()
			break
		}
		OutboundRequests.WithLabelValues(target, "retry").Inc()

		timer := time.NewTimer(Backoff(baseBackoff, attempt, client.Jitter))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

// doOnce performs a single attempt under its own timeout. The returned body
// stays readable until the caller closes it.
func (client HTTPClient) doOnce(ctx context.Context, request *http.Request, body []byte) (*http.Response, error) {
	timeout := client.Timeout
	if timeout <= 0 {
		timeout = client.Client.Timeout
	}

	var callCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}

	attempt := request.Clone(callCtx)
	if body != nil {
		attempt.Body = io.NopCloser(bytes.NewReader(body))
	}

	response, err := client.Client.Do(attempt)
	if err != nil {
		cancel()
		return nil, err
	}

	response.Body = &cancelOnClose{ReadCloser: response.Body, cancel: cancel}
	return response, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func readBody(request *http.Request) ([]byte, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, err
	}
	_ = request.Body.Close()
	return data, nil
}
