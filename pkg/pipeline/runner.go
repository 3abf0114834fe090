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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/kubernetes"

	"github.com/atlasproject/atlasctl/pkg/build"
	"github.com/atlasproject/atlasctl/pkg/defaults"
	"github.com/atlasproject/atlasctl/pkg/deploy"
	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
	"github.com/atlasproject/atlasctl/pkg/health"
	"github.com/atlasproject/atlasctl/pkg/manifest"
)

// Options configures a pipeline run.
type Options struct {
	// Manifest is the target cluster state.
	Manifest manifest.Config
	// Build configures the image build step.
	Build build.Config
	// Health configures the verification step. If Health.URL is empty, the
	// URL is derived from the cluster node address and the Service NodePort.
	Health health.Config
	// RolloutTimeout bounds the wait for Deployment readiness.
	RolloutTimeout time.Duration
	// SkipBuild skips the image build step (e.g. when the image is prebuilt
	// or loaded into the cluster by other means).
	SkipBuild bool
	// SkipVerify skips the health verification step.
	SkipVerify bool
}

// Runner executes the build/deploy/verify pipeline and produces a Report.
type Runner struct {
	clientset kubernetes.Interface
	builder   *build.Builder
	deployer  *deploy.Deployer
	opts      Options
}

// NewRunner creates a pipeline Runner. The runner argument is passed to the
// image builder; nil uses the real exec-based runner.
func NewRunner(clientset kubernetes.Interface, runner build.CommandRunner, opts Options) *Runner {
	if opts.RolloutTimeout <= 0 {
		opts.RolloutTimeout = defaults.RolloutTimeout
	}
	return &Runner{
		clientset: clientset,
		builder:   build.NewBuilder(runner, opts.Build),
		deployer:  deploy.NewDeployer(clientset, opts.Manifest),
		opts:      opts,
	}
}

// Run executes the pipeline: preflight, build, deploy, verify. It stops at
// the first failed step. The returned Report is non-nil in all cases so
// callers can serialize what happened; the error reflects the first failure.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	defer func() { report.Duration = time.Since(report.StartTime) }()

	slog.Info("pipeline run starting",
		"runId", report.RunID,
		"namespace", r.opts.Manifest.Namespace,
		"image", r.opts.Manifest.Image)

	steps := []struct {
		name string
		skip bool
		fn   func(context.Context, *Report) error
	}{
		{StepPreflight, false, r.preflight},
		{StepBuild, r.opts.SkipBuild, r.buildImage},
		{StepDeploy, false, r.deployApp},
		{StepVerify, r.opts.SkipVerify, r.verify},
	}

	for _, step := range steps {
		if step.skip {
			report.skip(step.name)
			slog.Info("pipeline step skipped", "step", step.name)
			continue
		}

		start := time.Now()
		err := step.fn(ctx, report)
		report.record(step.name, start, err)
		if err != nil {
			slog.Error("pipeline step failed",
				"runId", report.RunID,
				"step", step.name,
				"error", err)
			return report, err
		}
		slog.Info("pipeline step completed",
			"step", step.name,
			"duration", time.Since(start))
	}

	return report, nil
}

// preflight verifies the build daemon and the cluster API are both reachable
// before any mutation happens. The two probes run concurrently.
func (r *Runner) preflight(ctx context.Context, _ *Report) error {
	g, gctx := errgroup.WithContext(ctx)

	if !r.opts.SkipBuild {
		g.Go(func() error {
			return r.builder.Ping(gctx)
		})
	}

	g.Go(func() error {
		version, err := r.clientset.Discovery().ServerVersion()
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "cluster API not reachable", err)
		}
		slog.Debug("cluster API reachable", "version", version.GitVersion)
		return nil
	})

	return g.Wait()
}

func (r *Runner) buildImage(ctx context.Context, _ *Report) error {
	return r.builder.Build(ctx)
}

// deployApp reconciles the namespace, Deployment, and Service, then restarts
// the rollout so the freshly built image is picked up, and waits for the
// Deployment to become ready.
func (r *Runner) deployApp(ctx context.Context, report *Report) error {
	if err := r.deployer.Apply(ctx); err != nil {
		return err
	}
	if err := r.deployer.RolloutRestart(ctx, report.RunID); err != nil {
		return err
	}

	if err := r.deployer.WaitForRollout(ctx, r.opts.RolloutTimeout); err != nil {
		r.captureDiagnostics(ctx, report)
		return err
	}
	return nil
}

// verify resolves the service URL and polls the health endpoint. On failure
// the pod logs are captured into the report for debugging.
func (r *Runner) verify(ctx context.Context, report *Report) error {
	healthCfg := r.opts.Health
	if healthCfg.URL == "" {
		url, err := r.serviceURL(ctx)
		if err != nil {
			return err
		}
		healthCfg.URL = url
	}

	result, err := health.NewChecker(healthCfg).Check(ctx)
	report.Health = result
	if err != nil {
		r.captureDiagnostics(ctx, report)
		return err
	}

	report.Healthy = result.Healthy
	return nil
}

// serviceURL derives the health endpoint URL from the cluster node address
// and the Service's NodePort. The node address comes from the Kubernetes API
// where possible, falling back to the cluster provisioner.
func (r *Runner) serviceURL(ctx context.Context) (string, error) {
	port, err := r.deployer.ServiceNodePort(ctx)
	if err != nil {
		return "", err
	}

	addr, err := r.deployer.NodeAddress(ctx)
	if err != nil {
		addr, err = r.builder.NodeIP(ctx)
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeInternal,
				"failed to resolve cluster node address", err)
		}
	}

	return fmt.Sprintf("http://%s:%d%s", addr, port, r.opts.Manifest.HealthPath), nil
}

// captureDiagnostics dumps pod logs into the report. Best effort: a failure
// to fetch logs must not mask the original error.
func (r *Runner) captureDiagnostics(ctx context.Context, report *Report) {
	logs, err := r.deployer.PodLogs(ctx)
	if err != nil {
		slog.Warn("failed to capture pod logs", "error", err)
		return
	}
	report.PodLogs = logs
}
