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
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/atlasproject/atlasctl/pkg/manifest"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate Deployment and Service manifests",
		Description: `Validate manifest files for common defects: selector/label mismatches,
readiness probes targeting undeclared ports, NodePort range violations, and
Service selectors that match no pods. Without file flags, the built-in
manifests are validated.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "deployment",
				Aliases: []string{"f"},
				Usage:   "Path to a Deployment manifest YAML file",
			},
			&cli.StringFlag{
				Name:    "service",
				Aliases: []string{"s"},
				Usage:   "Path to a Service manifest YAML file",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := manifest.DefaultConfig()

			var (
				dep *appsv1.Deployment
				svc *corev1.Service
				err error
			)

			if path := cmd.String("deployment"); path != "" {
				dep, err = manifest.LoadDeployment(path)
				if err != nil {
					return err
				}
			} else {
				dep = manifest.Deployment(cfg)
			}

			if path := cmd.String("service"); path != "" {
				svc, err = manifest.LoadService(path)
				if err != nil {
					return err
				}
			} else {
				svc = manifest.Service(cfg)
			}

			result := manifest.ValidateSet(dep, svc)
			if err := writeResult(ctx, cmd, result); err != nil {
				return err
			}

			if !result.OK() {
				return fmt.Errorf("validation failed with %d finding(s)", len(result.Findings))
			}
			return nil
		},
	}
}
