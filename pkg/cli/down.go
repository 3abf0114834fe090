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

	"github.com/atlasproject/atlasctl/pkg/deploy"
)

func downCmd() *cli.Command {
	return &cli.Command{
		Name:                  "down",
		EnableShellCompletion: true,
		Usage:                 "Remove the app's resources from the cluster",
		Description: `Delete the app's Deployment and Service. With --all, the whole namespace
is deleted instead. Already-deleted resources are ignored, so the command
is safe to re-run.`,
		Flags: []cli.Flag{
			kubeconfigFlag,
			namespaceFlag,
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Delete the whole namespace",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			clientset, err := kubeClientFromCmd(cmd)
			if err != nil {
				return err
			}
			deployer := deploy.NewDeployer(clientset, manifestConfigFromCmd(cmd))
			return deployer.Cleanup(ctx, deploy.CleanupOptions{
				DeleteNamespace: cmd.Bool("all"),
			})
		},
	}
}
