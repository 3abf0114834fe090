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
	"os"

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/pipeline"
)

func upCmd() *cli.Command {
	return &cli.Command{
		Name:                  "up",
		EnableShellCompletion: true,
		Usage:                 "Run the full pipeline: build, deploy, and verify",
		Description: `Run the complete deployment pipeline against the local cluster:

  1. Preflight: verify the container daemon and cluster API are reachable.
  2. Build: build the app image directly into the cluster node's daemon.
  3. Deploy: reconcile namespace, Deployment, and Service; restart the
     rollout; wait for readiness.
  4. Verify: probe the health endpoint through the NodePort.

The run produces a report in JSON, YAML, or table format. On verification
failure, pod logs are captured into the report for debugging.`,
		Flags: []cli.Flag{
			kubeconfigFlag,
			namespaceFlag,
			imageFlag,
			profileFlag,
			buildContextFlag,
			dockerfileFlag,
			rolloutTimeoutFlag,
			&cli.BoolFlag{
				Name:  "skip-build",
				Usage: "Skip the image build step",
			},
			&cli.BoolFlag{
				Name:  "skip-verify",
				Usage: "Skip the health verification step",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			clientset, err := kubeClientFromCmd(cmd)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(clientset, nil, pipeline.Options{
				Manifest:       manifestConfigFromCmd(cmd),
				Build:          buildConfigFromCmd(cmd),
				RolloutTimeout: cmd.Duration("rollout-timeout"),
				SkipBuild:      cmd.Bool("skip-build"),
				SkipVerify:     cmd.Bool("skip-verify"),
			})

			report, runErr := runner.Run(ctx)

			// The report is written even when the run failed so the
			// failure details are not lost.
			if err := writeResult(ctx, cmd, report); err != nil {
				return err
			}

			if runErr != nil {
				if report.PodLogs != "" {
					fmt.Fprintln(os.Stderr, report.PodLogs)
				}
				return fmt.Errorf("pipeline run %s failed: %w", report.RunID, runErr)
			}
			return nil
		},
	}
}
