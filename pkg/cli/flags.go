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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/defaults"
	"github.com/atlasproject/atlasctl/pkg/serializer"
)

// Flags shared across subcommands.
var (
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("ATLAS_LOG_LEVEL", "LOG_LEVEL"),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to the kubeconfig file (default: $KUBECONFIG, then ~/.kube/config)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}

	namespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Value:   defaults.Namespace,
		Usage:   "Target namespace",
		Sources: cli.EnvVars("ATLAS_NAMESPACE"),
	}

	imageFlag = &cli.StringFlag{
		Name:    "image",
		Value:   defaults.Image,
		Usage:   "Image reference to build and deploy",
		Sources: cli.EnvVars("ATLAS_IMAGE"),
	}

	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Value:   defaults.MinikubeProfile,
		Usage:   "Minikube profile whose container daemon receives the image build",
		Sources: cli.EnvVars("ATLAS_MINIKUBE_PROFILE"),
	}

	buildContextFlag = &cli.StringFlag{
		Name:  "context",
		Value: ".",
		Usage: "Build context directory",
	}

	dockerfileFlag = &cli.StringFlag{
		Name:  "dockerfile",
		Usage: "Path to the Dockerfile (default: Dockerfile in the build context)",
	}

	rolloutTimeoutFlag = &cli.DurationFlag{
		Name:  "rollout-timeout",
		Value: defaults.RolloutTimeout,
		Usage: "Maximum time to wait for the Deployment rollout",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: string(serializer.FormatJSON),
		Usage: fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
	}
)
