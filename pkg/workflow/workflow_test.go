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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildDefaults(t *testing.T) {
	wf := Build(Config{})

	assert.Equal(t, "atlas-ci", wf.Name)
	assert.Equal(t, []string{"main"}, wf.On.Push.Branches)
	require.NotNil(t, wf.On.PullRequest)
	assert.Equal(t, []string{"main"}, wf.On.PullRequest.Branches)

	job, ok := wf.Jobs["minikube-ci"]
	require.True(t, ok)
	assert.Equal(t, "ubuntu-latest", job.RunsOn)
	require.Len(t, job.Steps, 6)

	assert.Equal(t, "actions/checkout@v4", job.Steps[0].Uses)
	assert.Equal(t, "medyagh/setup-minikube@latest", job.Steps[1].Uses)
	assert.Contains(t, job.Steps[2].Run, "docker build -t atlas-app:latest")
	assert.Contains(t, job.Steps[3].Run, "minikube image load atlas-app:latest")
	assert.Contains(t, job.Steps[4].Run, "kubectl create namespace atlas || true")
	assert.Contains(t, job.Steps[4].Run, "rollout status")
	assert.Contains(t, job.Steps[5].Run, ":30080/health")
	assert.Contains(t, job.Steps[5].Run, "--retry 5")
}

func TestBuildOverrides(t *testing.T) {
	wf := Build(Config{
		Name:      "custom-ci",
		Branches:  []string{"main", "release"},
		Namespace: "staging",
		Image:     "atlas-app:v2",
		NodePort:  31000,
	})

	assert.Equal(t, "custom-ci", wf.Name)
	assert.Equal(t, []string{"main", "release"}, wf.On.Push.Branches)

	job := wf.Jobs["minikube-ci"]
	assert.Contains(t, job.Steps[2].Run, "atlas-app:v2")
	assert.Contains(t, job.Steps[4].Run, "kubectl create namespace staging")
	assert.Contains(t, job.Steps[5].Run, ":31000/health")
}

func TestRenderIsValidYAML(t *testing.T) {
	data, err := Render(Config{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "name")
	assert.Contains(t, doc, "jobs")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".github", "workflows", "ci-atlas.yaml")
	written, err := WriteFile(Config{}, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "atlas-ci", doc["name"])
}
