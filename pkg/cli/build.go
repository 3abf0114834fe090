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

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/build"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:                  "build",
		EnableShellCompletion: true,
		Usage:                 "Build the app image into the cluster node's container daemon",
		Description: `Build the app image against the minikube node's container daemon so a
Deployment with pull policy Never can run it without a registry. Use
--profile "" to build against the local daemon instead.`,
		Flags: []cli.Flag{
			imageFlag,
			profileFlag,
			buildContextFlag,
			dockerfileFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			builder := build.NewBuilder(nil, buildConfigFromCmd(cmd))
			return builder.Build(ctx)
		},
	}
}
