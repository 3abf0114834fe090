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
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

func TestChecker_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	c := NewChecker(Config{URL: srv.URL + "/health"})
	result, err := c.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Healthy)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, 1, result.Attempts)
}

func TestChecker_RecoversWithinAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	c := NewChecker(Config{
		URL:      srv.URL + "/health",
		Attempts: 5,
		Interval: 10 * time.Millisecond,
	})
	result, err := c.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Healthy)
	assert.Equal(t, 3, result.Attempts)
}

func TestChecker_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	c := NewChecker(Config{
		URL:      srv.URL + "/health",
		Attempts: 2,
		Interval: 10 * time.Millisecond,
	})
	result, err := c.Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnhealthy, apperrors.CodeOf(err))

	require.NotNil(t, result)
	assert.False(t, result.Healthy)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, 2, result.Attempts)
}

func TestChecker_ConnectionRefused(t *testing.T) {
	// Reserve a port, then close the listener so nothing is serving.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewChecker(Config{
		URL:      url + "/health",
		Attempts: 2,
		Interval: 10 * time.Millisecond,
		Timeout:  time.Second,
	})
	result, err := c.Check(context.Background())
	require.Error(t, err)
	assert.False(t, result.Healthy)
	assert.Zero(t, result.StatusCode)
}

func TestChecker_NonJSONBodyStillHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewChecker(Config{URL: srv.URL + "/health"})
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Empty(t, result.Status)
}

func TestChecker_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChecker(Config{
		URL:      srv.URL + "/health",
		Attempts: 5,
		Interval: time.Minute, // limiter wait would block without cancellation
	})

	start := time.Now()
	_, err := c.Check(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
