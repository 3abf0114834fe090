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

package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atlasproject/atlasctl/pkg/defaults"
	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// DefaultPath is where the generated workflow is written relative to the
// repository root.
const DefaultPath = ".github/workflows/ci-atlas.yaml"

// Config parameterizes the generated CI workflow.
type Config struct {
	// Name is the workflow display name.
	Name string
	// Branches trigger the workflow on push and pull request.
	Branches []string
	// Namespace the app is deployed into.
	Namespace string
	// Image is the local image reference built and loaded into minikube.
	Image string
	// NodePort the smoke test probes.
	NodePort int32
	// HealthPath is the endpoint path probed by the smoke test.
	HealthPath string
	// HealthAttempts is the curl retry count for the smoke test.
	HealthAttempts int
}

// DefaultConfig returns the workflow configuration matching the pipeline
// defaults.
func DefaultConfig() Config {
	return Config{
		Name:           "atlas-ci",
		Branches:       []string{"main"},
		Namespace:      defaults.Namespace,
		Image:          defaults.Image,
		NodePort:       defaults.NodePort,
		HealthPath:     defaults.HealthPath,
		HealthAttempts: defaults.HealthAttempts,
	}
}

// Workflow is the GitHub Actions workflow document. Only the subset of the
// schema the generator emits is modeled.
type Workflow struct {
	Name string         `yaml:"name"`
	On   Triggers       `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

// Triggers holds the workflow trigger configuration.
type Triggers struct {
	Push        BranchFilter  `yaml:"push"`
	PullRequest *BranchFilter `yaml:"pull_request,omitempty"`
}

// BranchFilter restricts a trigger to a set of branches.
type BranchFilter struct {
	Branches []string `yaml:"branches"`
}

// Job is a single workflow job.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is a single job step. Exactly one of Uses or Run is set.
type Step struct {
	Name string `yaml:"name,omitempty"`
	Uses string `yaml:"uses,omitempty"`
	Run  string `yaml:"run,omitempty"`
}

// Build assembles the workflow document from the config. Zero-value config
// fields fall back to the defaults.
func Build(config Config) Workflow {
	def := DefaultConfig()
	if config.Name == "" {
		config.Name = def.Name
	}
	if len(config.Branches) == 0 {
		config.Branches = def.Branches
	}
	if config.Namespace == "" {
		config.Namespace = def.Namespace
	}
	if config.Image == "" {
		config.Image = def.Image
	}
	if config.NodePort == 0 {
		config.NodePort = def.NodePort
	}
	if config.HealthPath == "" {
		config.HealthPath = def.HealthPath
	}
	if config.HealthAttempts <= 0 {
		config.HealthAttempts = def.HealthAttempts
	}

	filter := BranchFilter{Branches: config.Branches}
	smokeTest := strings.Join([]string{
		"IP=$(minikube ip)",
		fmt.Sprintf("curl --retry %d --retry-delay 2 --retry-all-errors --fail http://$IP:%d%s",
			config.HealthAttempts, config.NodePort, config.HealthPath),
	}, "\n")

	return Workflow{
		Name: config.Name,
		On: Triggers{
			Push:        filter,
			PullRequest: &filter,
		},
		Jobs: map[string]Job{
			"minikube-ci": {
				RunsOn: "ubuntu-latest",
				Steps: []Step{
					{Uses: "actions/checkout@v4"},
					{
						Name: "Start Minikube",
						Uses: "medyagh/setup-minikube@latest",
					},
					{
						Name: "Build Docker image",
						Run:  fmt.Sprintf("docker build -t %s .", config.Image),
					},
					{
						Name: "Load image into Minikube",
						Run:  fmt.Sprintf("minikube image load %s", config.Image),
					},
					{
						Name: "Deploy to Minikube",
						Run: strings.Join([]string{
							fmt.Sprintf("kubectl create namespace %s || true", config.Namespace),
							fmt.Sprintf("kubectl apply -n %s -f deployments/", config.Namespace),
							fmt.Sprintf("kubectl rollout status -n %s deployment/%s --timeout=120s",
								config.Namespace, defaults.DeploymentName),
						}, "\n"),
					},
					{
						Name: "Smoke-test the service",
						Run:  smokeTest,
					},
				},
			},
		},
	}
}

// Render marshals the workflow document to YAML.
func Render(config Config) ([]byte, error) {
	data, err := yaml.Marshal(Build(config))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to render workflow", err)
	}
	return data, nil
}

// WriteFile renders the workflow and writes it to path, creating parent
// directories as needed. An empty path writes to DefaultPath.
func WriteFile(config Config, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	data, err := Render(config)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperrors.WrapWithContext(apperrors.ErrCodeInternal,
			"failed to create workflow directory", err,
			map[string]any{"path": path})
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.WrapWithContext(apperrors.ErrCodeInternal,
			"failed to write workflow file", err,
			map[string]any{"path": path})
	}
	return path, nil
}
