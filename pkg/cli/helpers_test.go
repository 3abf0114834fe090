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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/build"
	"github.com/atlasproject/atlasctl/pkg/manifest"
)

func TestManifestConfigFromCmd(t *testing.T) {
	var captured manifest.Config
	testCmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{namespaceFlag, imageFlag},
		Action: func(_ context.Context, cmd *cli.Command) error {
			captured = manifestConfigFromCmd(cmd)
			return nil
		},
	}

	err := testCmd.Run(context.Background(),
		[]string{"test", "--namespace", "staging", "--image", "atlas-app:v2"})
	require.NoError(t, err)

	assert.Equal(t, "staging", captured.Namespace)
	assert.Equal(t, "atlas-app:v2", captured.Image)
	// Untouched fields keep their defaults.
	assert.Equal(t, "atlas-deployment", captured.DeploymentName)
	assert.Equal(t, int32(30080), captured.NodePort)
}

func TestManifestConfigFromCmdDefaults(t *testing.T) {
	var captured manifest.Config
	testCmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{namespaceFlag, imageFlag},
		Action: func(_ context.Context, cmd *cli.Command) error {
			captured = manifestConfigFromCmd(cmd)
			return nil
		},
	}

	err := testCmd.Run(context.Background(), []string{"test"})
	require.NoError(t, err)
	assert.Equal(t, manifest.DefaultConfig(), captured)
}

func TestBuildConfigFromCmd(t *testing.T) {
	var captured build.Config
	testCmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{imageFlag, profileFlag, buildContextFlag, dockerfileFlag},
		Action: func(_ context.Context, cmd *cli.Command) error {
			captured = buildConfigFromCmd(cmd)
			return nil
		},
	}

	err := testCmd.Run(context.Background(),
		[]string{"test", "--image", "atlas-app:dev", "--profile", "atlas", "--context", "./app", "--dockerfile", "app/Dockerfile"})
	require.NoError(t, err)

	assert.Equal(t, "atlas-app:dev", captured.Image)
	assert.Equal(t, "atlas", captured.Profile)
	assert.Equal(t, "./app", captured.Context)
	assert.Equal(t, "app/Dockerfile", captured.Dockerfile)
}

func TestRootCmdCommands(t *testing.T) {
	root := rootCmd()

	want := []string{"up", "build", "deploy", "verify", "logs", "validate", "workflow", "bundle", "down"}
	var got []string
	for _, c := range root.Commands {
		got = append(got, c.Name)
	}
	assert.Equal(t, want, got)
}

func TestWriteResultRejectsUnknownFormat(t *testing.T) {
	testCmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeResult(ctx, cmd, map[string]string{"key": "value"})
		},
	}

	err := testCmd.Run(context.Background(), []string{"test", "--format", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
