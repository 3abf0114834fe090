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
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/deploy"
)

func deployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deploy",
		EnableShellCompletion: true,
		Usage:                 "Reconcile the app's namespace, Deployment, and Service",
		Description: `Reconcile the cluster toward the desired state: ensure the namespace
exists, create or update the Deployment and NodePort Service, restart the
rollout so the current image is picked up, and wait for the Deployment to
become ready. The operation is idempotent and safe to re-run.`,
		Flags: []cli.Flag{
			kubeconfigFlag,
			namespaceFlag,
			imageFlag,
			rolloutTimeoutFlag,
			&cli.BoolFlag{
				Name:  "no-restart",
				Usage: "Apply resources without restarting the rollout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			clientset, err := kubeClientFromCmd(cmd)
			if err != nil {
				return err
			}

			deployer := deploy.NewDeployer(clientset, manifestConfigFromCmd(cmd))
			if err := deployer.Apply(ctx); err != nil {
				return err
			}

			if !cmd.Bool("no-restart") {
				runID := uuid.NewString()
				if err := deployer.RolloutRestart(ctx, runID); err != nil {
					return err
				}
				slog.Info("rollout restarted", "runId", runID)
			}

			return deployer.WaitForRollout(ctx, cmd.Duration("rollout-timeout"))
		},
	}
}
