// Copyright (c) 2026, Atlas Project Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/atlasproject/atlasctl/pkg/defaults"
	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// Config holds the configuration for the health verification step.
type Config struct {
	// URL is the full health endpoint URL
	// (e.g. "http://192.168.49.2:30080/health").
	URL string
	// Attempts is the number of tries before the check is declared failed.
	Attempts int
	// Interval is the pacing between attempts.
	Interval time.Duration
	// Timeout bounds each individual attempt.
	Timeout time.Duration
}

// Result describes the outcome of a health verification.
type Result struct {
	Healthy    bool          `json:"healthy" yaml:"healthy"`
	URL        string        `json:"url" yaml:"url"`
	StatusCode int           `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Status     string        `json:"status,omitempty" yaml:"status,omitempty"`
	Attempts   int           `json:"attempts" yaml:"attempts"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// healthBody is the JSON shape the application health endpoint returns.
type healthBody struct {
	Status string `json:"status"`
}

// Checker polls an HTTP health endpoint with bounded, paced retries.
type Checker struct {
	client  *http.Client
	config  Config
	limiter *rate.Limiter
}

// NewChecker creates a Checker, filling zero-value config fields with the
// pipeline defaults (5 attempts, 2s pacing, 5s per-attempt timeout).
func NewChecker(config Config) *Checker {
	if config.Attempts <= 0 {
		config.Attempts = defaults.HealthAttempts
	}
	if config.Interval <= 0 {
		config.Interval = defaults.HealthInterval
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.HealthTimeout
	}

	return &Checker{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
		// Burst 1 lets the first attempt go immediately; later attempts
		// are paced at the configured interval.
		limiter: rate.NewLimiter(rate.Every(config.Interval), 1),
	}
}

// Check polls the health endpoint until it reports healthy or attempts are
// exhausted. A non-nil Result is returned in both cases so callers can
// include the observed status in their report; the error carries the
// UNHEALTHY classification on failure.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	result := &Result{URL: c.config.URL}
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= c.config.Attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			result.Duration = time.Since(start)
			return result, apperrors.Wrap(apperrors.ErrCodeUnhealthy, "health check canceled", err)
		}

		result.Attempts = attempt
		slog.Debug("health check attempt",
			"url", c.config.URL,
			"attempt", attempt,
			"of", c.config.Attempts)

		code, status, err := c.probe(ctx)
		result.StatusCode = code
		result.Status = status

		if err == nil && code >= 200 && code < 300 {
			result.Healthy = true
			result.Duration = time.Since(start)
			slog.Info("health check passed",
				"url", c.config.URL,
				"status", status,
				"attempts", attempt)
			return result, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status code %d", code)
		}
		slog.Warn("health check attempt failed",
			"url", c.config.URL,
			"attempt", attempt,
			"error", lastErr)
	}

	result.Duration = time.Since(start)
	return result, apperrors.WrapWithContext(apperrors.ErrCodeUnhealthy,
		fmt.Sprintf("health check failed after %d attempts", c.config.Attempts),
		lastErr,
		map[string]any{"url": c.config.URL})
}

// probe performs a single GET against the health endpoint and parses the
// status field from the body. Body parse failures are tolerated: reporting
// the status field is best-effort, the status code is what decides health.
func (c *Checker) probe(ctx context.Context) (int, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return 0, "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.StatusCode, "", nil
	}

	return resp.StatusCode, body.Status, nil
}
