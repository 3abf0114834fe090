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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/atlasproject/atlasctl/pkg/build"
	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
	"github.com/atlasproject/atlasctl/pkg/health"
	"github.com/atlasproject/atlasctl/pkg/manifest"
)

// fakeRunner is a scripted CommandRunner. Commands are matched by prefix
// against the joined command line.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, _ []string, name string, args ...string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	for prefix, err := range f.errs {
		if strings.HasPrefix(cmd, prefix) {
			return "", err
		}
	}
	for prefix, out := range f.outputs {
		if strings.HasPrefix(cmd, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (f *fakeRunner) called(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func healthyRunner() *fakeRunner {
	return &fakeRunner{
		outputs: map[string]string{
			"minikube -p minikube docker-env": "export DOCKER_HOST=\"tcp://192.168.49.2:2376\"\nexport DOCKER_TLS_VERIFY=\"1\"\n",
			"docker version":                  "24.0.7",
			"docker build":                    "built",
			"minikube -p minikube ip":         "192.168.49.2",
		},
		errs: map[string]error{},
	}
}

// readyClientset returns a fake clientset whose Deployments immediately
// report a converged rollout status after create or update.
func readyClientset(objects ...runtime.Object) *fake.Clientset {
	clientset := fake.NewClientset(objects...)
	markReady := func(action k8stesting.Action) (bool, runtime.Object, error) {
		var dep *appsv1.Deployment
		switch a := action.(type) {
		case k8stesting.CreateAction:
			dep, _ = a.GetObject().(*appsv1.Deployment)
		case k8stesting.UpdateAction:
			dep, _ = a.GetObject().(*appsv1.Deployment)
		}
		if dep != nil {
			desired := int32(1)
			if dep.Spec.Replicas != nil {
				desired = *dep.Spec.Replicas
			}
			dep.Status.ObservedGeneration = dep.Generation
			dep.Status.UpdatedReplicas = desired
			dep.Status.ReadyReplicas = desired
			dep.Status.AvailableReplicas = desired
		}
		return false, nil, nil
	}
	clientset.PrependReactor("create", "deployments", markReady)
	clientset.PrependReactor("update", "deployments", markReady)
	return clientset
}

func testOptions(healthURL string) Options {
	return Options{
		Manifest: manifest.DefaultConfig(),
		Build: build.Config{
			Image:   "atlas-app:latest",
			Context: ".",
			Profile: "minikube",
		},
		Health: health.Config{
			URL:      healthURL,
			Attempts: 2,
			Interval: 10 * time.Millisecond,
			Timeout:  time.Second,
		},
		RolloutTimeout: 5 * time.Second,
	}
}

func TestRunnerSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"healthy"}`)
	}))
	defer srv.Close()

	clientset := readyClientset()
	runner := healthyRunner()

	report, err := NewRunner(clientset, runner, testOptions(srv.URL+"/health")).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.True(t, report.Healthy)
	assert.False(t, report.Failed())
	require.Len(t, report.Steps, 4)
	for _, step := range report.Steps {
		assert.Equal(t, StatusOK, step.Status, step.Name)
	}

	require.NotNil(t, report.Health)
	assert.Equal(t, "healthy", report.Health.Status)

	// The deployment must exist and carry the run ID annotation.
	dep, err := clientset.AppsV1().Deployments("atlas").Get(
		context.Background(), "atlas-deployment", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, report.RunID,
		dep.Spec.Template.Annotations["atlasctl.atlasproject.io/run-id"])

	assert.True(t, runner.called("docker build"))
}

func TestRunnerBuildFailureStopsPipeline(t *testing.T) {
	clientset := readyClientset()
	runner := healthyRunner()
	runner.errs["docker build"] = fmt.Errorf("exit status 1")

	report, err := NewRunner(clientset, runner, testOptions("http://unused/health")).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeBuildFailed, apperrors.CodeOf(err))

	require.Len(t, report.Steps, 2)
	assert.Equal(t, StepPreflight, report.Steps[0].Name)
	assert.Equal(t, StatusOK, report.Steps[0].Status)
	assert.Equal(t, StepBuild, report.Steps[1].Name)
	assert.Equal(t, StatusFailed, report.Steps[1].Status)
	assert.True(t, report.Failed())

	// Nothing should be deployed after a failed build.
	_, getErr := clientset.AppsV1().Deployments("atlas").Get(
		context.Background(), "atlas-deployment", metav1.GetOptions{})
	assert.Error(t, getErr)
}

func TestRunnerSkipBuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"healthy"}`)
	}))
	defer srv.Close()

	clientset := readyClientset()
	runner := healthyRunner()

	opts := testOptions(srv.URL + "/health")
	opts.SkipBuild = true

	report, err := NewRunner(clientset, runner, opts).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Steps, 4)
	assert.Equal(t, StatusSkipped, report.Steps[1].Status)
	assert.False(t, runner.called("docker build"))
	assert.False(t, runner.called("docker version"))
}

func TestRunnerVerifyFailureCapturesPodLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "atlas-deployment-abc123",
			Namespace: "atlas",
			Labels:    map[string]string{"app": "atlas-app"},
		},
	}
	clientset := readyClientset(pod)
	runner := healthyRunner()

	report, err := NewRunner(clientset, runner, testOptions(srv.URL+"/health")).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnhealthy, apperrors.CodeOf(err))

	assert.False(t, report.Healthy)
	require.NotNil(t, report.Health)
	assert.Equal(t, 2, report.Health.Attempts)

	// Pod logs are captured for debugging. The fake clientset serves a
	// canned body, so just check the pod header made it in.
	assert.Contains(t, report.PodLogs, "atlas-deployment-abc123")
}

func TestRunnerPreflightClusterUnreachable(t *testing.T) {
	clientset := readyClientset()
	clientset.PrependReactor("*", "*", func(_ k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, fmt.Errorf("connection refused")
	})
	// Discovery is not covered by object reactors; simulate failure via the
	// build daemon instead.
	runner := healthyRunner()
	runner.errs["docker version"] = fmt.Errorf("cannot connect to the Docker daemon")

	report, err := NewRunner(clientset, runner, testOptions("http://unused/health")).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeBuildFailed, apperrors.CodeOf(err))

	require.Len(t, report.Steps, 1)
	assert.Equal(t, StepPreflight, report.Steps[0].Name)
	assert.Equal(t, StatusFailed, report.Steps[0].Status)
}
