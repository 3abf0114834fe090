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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/build"
	"github.com/atlasproject/atlasctl/pkg/k8s/client"
	"github.com/atlasproject/atlasctl/pkg/manifest"
	"github.com/atlasproject/atlasctl/pkg/serializer"
)

// manifestConfigFromCmd builds the target manifest configuration from the
// common flags, starting from the defaults.
func manifestConfigFromCmd(cmd *cli.Command) manifest.Config {
	cfg := manifest.DefaultConfig()
	if v := cmd.String("namespace"); v != "" {
		cfg.Namespace = v
	}
	if v := cmd.String("image"); v != "" {
		cfg.Image = v
	}
	return cfg
}

// buildConfigFromCmd builds the image build configuration from the common
// flags.
func buildConfigFromCmd(cmd *cli.Command) build.Config {
	return build.Config{
		Image:      cmd.String("image"),
		Dockerfile: cmd.String("dockerfile"),
		Context:    cmd.String("context"),
		Profile:    cmd.String("profile"),
	}
}

// kubeClientFromCmd resolves a Kubernetes clientset honoring the
// --kubeconfig flag.
func kubeClientFromCmd(cmd *cli.Command) (client.Interface, error) {
	clientset, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return clientset, nil
}

// writeResult serializes data per the --format and --output flags.
func writeResult(ctx context.Context, cmd *cli.Command, data any) error {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown output format: %q", outFormat)
	}

	writer := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() { _ = writer.Close() }()

	return writer.Serialize(ctx, data)
}
