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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/atlasproject/atlasctl/pkg/manifest"
)

// writeManifestFiles renders the built-in manifests to disk, optionally
// mutating the deployment YAML first.
func writeManifestFiles(t *testing.T, mutate func(string) string) (depPath, svcPath string) {
	t.Helper()
	dir := t.TempDir()
	cfg := manifest.DefaultConfig()

	depData, err := manifest.Render(manifest.Deployment(cfg))
	require.NoError(t, err)
	depYAML := string(depData)
	if mutate != nil {
		depYAML = mutate(depYAML)
	}
	depPath = filepath.Join(dir, "deployment.yaml")
	require.NoError(t, os.WriteFile(depPath, []byte(depYAML), 0o644))

	svcData, err := manifest.Render(manifest.Service(cfg))
	require.NoError(t, err)
	svcPath = filepath.Join(dir, "service.yaml")
	require.NoError(t, os.WriteFile(svcPath, svcData, 0o644))

	return depPath, svcPath
}

func TestValidateCommandPasses(t *testing.T) {
	depPath, svcPath := writeManifestFiles(t, nil)

	out := filepath.Join(t.TempDir(), "result.json")
	err := rootCmd().Run(context.Background(), []string{
		"atlasctl", "validate",
		"--deployment", depPath,
		"--service", svcPath,
		"--output", out,
	})
	require.NoError(t, err)
}

func TestValidateCommandFlagsProbePortMismatch(t *testing.T) {
	// Point the readiness probe at a port the container does not declare.
	depPath, svcPath := writeManifestFiles(t, func(depYAML string) string {
		return strings.Replace(depYAML, "port: 5000", "port: 8000", 1)
	})

	out := filepath.Join(t.TempDir(), "result.json")
	err := rootCmd().Run(context.Background(), []string{
		"atlasctl", "validate",
		"--deployment", depPath,
		"--service", svcPath,
		"--output", out,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "8000")
}

func TestValidateCommandDefaultsPass(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	err := rootCmd().Run(context.Background(), []string{
		"atlasctl", "validate", "--output", out,
	})
	require.NoError(t, err)
}

func TestWorkflowCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci.yaml")
	err := rootCmd().Run(context.Background(), []string{
		"atlasctl", "workflow", "--output", path,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "atlas-ci", doc["name"])
}

func TestRenderBundle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, renderBundle(manifest.DefaultConfig(), dir))

	for _, name := range []string{
		"atlas-namespace.yaml",
		"atlas-deployment.yaml",
		"atlas-service.yaml",
		"ci-atlas.yaml",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(data, &doc), name)
	}
}

func TestBundleCommandRequiresTarget(t *testing.T) {
	err := rootCmd().Run(context.Background(), []string{"atlasctl", "bundle"})
	require.Error(t, err)
}
