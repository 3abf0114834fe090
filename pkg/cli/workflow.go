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
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/workflow"
)

func workflowCmd() *cli.Command {
	return &cli.Command{
		Name:                  "workflow",
		EnableShellCompletion: true,
		Usage:                 "Generate the GitHub Actions CI workflow",
		Description: `Generate a CI workflow that checks out the repo, starts minikube, builds
and loads the app image, applies the manifests, and smoke-tests the health
endpoint. By default the file is written to ` + workflow.DefaultPath + `.`,
		Flags: []cli.Flag{
			namespaceFlag,
			imageFlag,
			&cli.StringSliceFlag{
				Name:  "branch",
				Usage: "Branches that trigger the workflow (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Print the workflow to stdout instead of writing a file",
			},
			outputFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := workflow.DefaultConfig()
			cfg.Namespace = cmd.String("namespace")
			cfg.Image = cmd.String("image")
			if branches := cmd.StringSlice("branch"); len(branches) > 0 {
				cfg.Branches = branches
			}

			if cmd.Bool("stdout") {
				data, err := workflow.Render(cfg)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			path, err := workflow.WriteFile(cfg, cmd.String("output"))
			if err != nil {
				return err
			}
			slog.Info("workflow generated", "path", path)
			fmt.Fprintf(os.Stdout, "Generated GitHub Actions workflow: %s\n", path)
			return nil
		},
	}
}
