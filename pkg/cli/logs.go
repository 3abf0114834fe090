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

	"github.com/atlasproject/atlasctl/pkg/deploy"
)

func logsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "logs",
		EnableShellCompletion: true,
		Usage:                 "Print logs from the app's pods",
		Flags: []cli.Flag{
			kubeconfigFlag,
			namespaceFlag,
			&cli.BoolFlag{
				Name:    "follow",
				Aliases: []string{"f"},
				Usage:   "Stream logs until interrupted",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			clientset, err := kubeClientFromCmd(cmd)
			if err != nil {
				return err
			}
			deployer := deploy.NewDeployer(clientset, manifestConfigFromCmd(cmd))

			if cmd.Bool("follow") {
				return deployer.StreamLogs(ctx, os.Stdout, "")
			}

			logs, err := deployer.PodLogs(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, logs)
			return nil
		},
	}
}
