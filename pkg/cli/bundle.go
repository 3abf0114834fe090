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
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/atlasproject/atlasctl/pkg/manifest"
	"github.com/atlasproject/atlasctl/pkg/oci"
	"github.com/atlasproject/atlasctl/pkg/workflow"
)

func bundleCmd() *cli.Command {
	return &cli.Command{
		Name:                  "bundle",
		EnableShellCompletion: true,
		Usage:                 "Render the deployment bundle to a directory or OCI registry",
		Description: `Render the app's manifests and CI workflow as a distributable bundle.

The target can be a local directory or an OCI registry reference:

  atlasctl bundle --target ./out
  atlasctl bundle --target oci://ghcr.io/atlasproject/atlas-bundle:v1.0.0

OCI pushes use Docker credentials from the local credential store.`,
		Flags: []cli.Flag{
			namespaceFlag,
			imageFlag,
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "Output directory or oci:// registry reference",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the registry connection",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target, err := oci.ParseOutputTarget(cmd.String("target"))
			if err != nil {
				return err
			}

			cfg := manifestConfigFromCmd(cmd)

			if !target.IsOCI {
				return renderBundle(cfg, target.LocalPath)
			}

			if target.Tag == "" {
				target = target.WithTag(version)
			}

			// Render to a temp dir, then push the rendered tree.
			tempDir, err := os.MkdirTemp("", "atlas-bundle-*")
			if err != nil {
				return fmt.Errorf("failed to create temp directory: %w", err)
			}
			defer os.RemoveAll(tempDir)

			if err := renderBundle(cfg, tempDir); err != nil {
				return err
			}

			result, err := oci.Push(ctx, oci.PushOptions{
				SourceDir:   tempDir,
				Registry:    target.Registry,
				Repository:  target.Repository,
				Tag:         target.Tag,
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Annotations: map[string]string{
					"org.opencontainers.image.version": version,
					"org.opencontainers.image.title":   "Atlas Deployment Bundle",
				},
			})
			if err != nil {
				return err
			}

			slog.Info("bundle pushed", "reference", result.Reference, "digest", result.Digest)
			fmt.Fprintf(os.Stdout, "Pushed %s (%s)\n", result.Reference, result.Digest)
			return nil
		},
	}
}

// renderBundle writes the manifests and the CI workflow into dir.
func renderBundle(cfg manifest.Config, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}

	files := map[string]func() ([]byte, error){
		"atlas-namespace.yaml": func() ([]byte, error) {
			return manifest.Render(manifest.Namespace(cfg))
		},
		"atlas-deployment.yaml": func() ([]byte, error) {
			return manifest.Render(manifest.Deployment(cfg))
		},
		"atlas-service.yaml": func() ([]byte, error) {
			return manifest.Render(manifest.Service(cfg))
		},
		"ci-atlas.yaml": func() ([]byte, error) {
			wfCfg := workflow.DefaultConfig()
			wfCfg.Namespace = cfg.Namespace
			wfCfg.Image = cfg.Image
			wfCfg.NodePort = cfg.NodePort
			wfCfg.HealthPath = cfg.HealthPath
			return workflow.Render(wfCfg)
		},
	}

	for name, render := range files {
		data, err := render()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	slog.Info("bundle rendered", "dir", dir)
	return nil
}
