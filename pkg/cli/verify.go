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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/build"
	"github.com/atlasproject/atlasctl/pkg/defaults"
	"github.com/atlasproject/atlasctl/pkg/deploy"
	"github.com/atlasproject/atlasctl/pkg/health"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "verify",
		EnableShellCompletion: true,
		Usage:                 "Probe the app's health endpoint through the NodePort",
		Description: `Resolve the cluster node address and the Service NodePort, then poll the
health endpoint with bounded retries. On failure, pod logs are dumped to
stderr for debugging. Use --url to probe an explicit endpoint instead.`,
		Flags: []cli.Flag{
			kubeconfigFlag,
			namespaceFlag,
			profileFlag,
			&cli.StringFlag{
				Name:  "url",
				Usage: "Explicit health endpoint URL (skips node address resolution)",
			},
			&cli.IntFlag{
				Name:  "attempts",
				Value: defaults.HealthAttempts,
				Usage: "Number of health check attempts",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: defaults.HealthInterval,
				Usage: "Pacing between attempts",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.HealthTimeout,
				Usage: "Per-attempt timeout",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			clientset, err := kubeClientFromCmd(cmd)
			if err != nil {
				return err
			}
			deployer := deploy.NewDeployer(clientset, manifestConfigFromCmd(cmd))

			url := cmd.String("url")
			if url == "" {
				url, err = resolveHealthURL(ctx, cmd, deployer)
				if err != nil {
					return err
				}
			}

			checker := health.NewChecker(health.Config{
				URL:      url,
				Attempts: int(cmd.Int("attempts")),
				Interval: cmd.Duration("interval"),
				Timeout:  cmd.Duration("timeout"),
			})

			result, checkErr := checker.Check(ctx)
			if err := writeResult(ctx, cmd, result); err != nil {
				return err
			}

			if checkErr != nil {
				dumpPodLogs(ctx, deployer)
				return checkErr
			}
			return nil
		},
	}
}

// resolveHealthURL derives the health endpoint URL from the Service NodePort
// and the cluster node address, falling back to the provisioner for the
// address when the API does not report one.
func resolveHealthURL(ctx context.Context, cmd *cli.Command, deployer *deploy.Deployer) (string, error) {
	port, err := deployer.ServiceNodePort(ctx)
	if err != nil {
		return "", err
	}

	addr, err := deployer.NodeAddress(ctx)
	if err != nil {
		builder := build.NewBuilder(nil, build.Config{Profile: cmd.String("profile")})
		addr, err = builder.NodeIP(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to resolve cluster node address: %w", err)
		}
	}

	return fmt.Sprintf("http://%s:%d%s", addr, port, deployer.Config().HealthPath), nil
}

// dumpPodLogs writes pod logs to stderr. Best effort.
func dumpPodLogs(ctx context.Context, deployer *deploy.Deployer) {
	logsCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	logs, err := deployer.PodLogs(logsCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch pod logs: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, logs)
}
