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

package build

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/distribution/reference"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// Config holds the configuration for building the application image.
type Config struct {
	// Image is the image reference to build (e.g. "atlas-app:latest").
	Image string
	// Dockerfile is the path to the Dockerfile. Empty means the builder's
	// default ("Dockerfile" in the context directory).
	Dockerfile string
	// Context is the build context directory.
	Context string
	// Profile is the minikube profile whose container daemon receives the
	// build. Empty disables daemon redirection and builds against the
	// local daemon.
	Profile string
}

// Builder builds the application image directly into the cluster node's
// container daemon so that a Deployment with pull policy Never can run it
// without a registry.
type Builder struct {
	runner CommandRunner
	config Config
}

// NewBuilder creates a Builder. A nil runner defaults to ExecRunner.
func NewBuilder(runner CommandRunner, config Config) *Builder {
	if runner == nil {
		runner = ExecRunner{}
	}
	if config.Context == "" {
		config.Context = "."
	}
	return &Builder{
		runner: runner,
		config: config,
	}
}

// Validate checks that the configured image is a well-formed reference.
func (b *Builder) Validate() error {
	if _, err := reference.ParseNormalizedNamed(b.config.Image); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid image reference %q", b.config.Image), err)
	}
	return nil
}

// Ping verifies the container build tool is installed and its daemon is
// reachable. Used by pipeline preflight.
func (b *Builder) Ping(ctx context.Context) error {
	env, err := b.daemonEnv(ctx)
	if err != nil {
		return err
	}
	if _, err := b.runner.Run(ctx, env, "docker", "version", "--format", "{{.Server.Version}}"); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeBuildFailed, "container daemon not reachable", err)
	}
	return nil
}

// Build builds the image against the target daemon. A non-zero exit from
// the build tool is fatal.
func (b *Builder) Build(ctx context.Context) error {
	if err := b.Validate(); err != nil {
		return err
	}

	env, err := b.daemonEnv(ctx)
	if err != nil {
		return err
	}

	args := []string{"build", "-t", b.config.Image}
	if b.config.Dockerfile != "" {
		args = append(args, "-f", b.config.Dockerfile)
	}
	args = append(args, b.config.Context)

	start := time.Now()
	slog.Info("building image",
		"image", b.config.Image,
		"context", b.config.Context,
		"profile", b.config.Profile)

	if _, err := b.runner.Run(ctx, env, "docker", args...); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeBuildFailed,
			fmt.Sprintf("failed to build image %q", b.config.Image), err)
	}

	slog.Info("image built", "image", b.config.Image, "duration", time.Since(start))
	return nil
}

// NodeIP resolves the cluster node IP via the cluster provisioner.
// The verification step dials <ip>:<nodePort> for the health check.
func (b *Builder) NodeIP(ctx context.Context) (string, error) {
	if b.config.Profile == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest, "no cluster profile configured")
	}
	out, err := b.runner.Run(ctx, nil, "minikube", "-p", b.config.Profile, "ip")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve cluster node IP", err)
	}
	return strings.TrimSpace(out), nil
}

// daemonEnv returns the environment that points the build tool at the
// cluster node's container daemon, parsed from `minikube docker-env`.
func (b *Builder) daemonEnv(ctx context.Context) ([]string, error) {
	if b.config.Profile == "" {
		return nil, nil
	}

	out, err := b.runner.Run(ctx, nil, "minikube", "-p", b.config.Profile, "docker-env", "--shell", "bash")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeBuildFailed,
			"failed to resolve cluster container daemon environment", err)
	}

	return parseDockerEnv(out), nil
}

// parseDockerEnv extracts KEY=VALUE pairs from `export KEY="VALUE"` lines.
// Comment and non-export lines are ignored.
func parseDockerEnv(out string) []string {
	var env []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "export ") {
			continue
		}
		kv := strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		env = append(env, key+"="+value)
	}
	return env
}
