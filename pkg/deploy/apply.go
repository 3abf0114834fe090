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

package deploy

import (
	"context"
	"fmt"
	"log/slog"

	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
	"github.com/atlasproject/atlasctl/pkg/manifest"
)

// Apply reconciles the Namespace, Deployment, and Service to the desired
// state. It is idempotent: existing resources are updated in place rather
// than restarted unconditionally.
func (d *Deployer) Apply(ctx context.Context) error {
	if err := d.ensureNamespace(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to ensure namespace %q", d.config.Namespace), err)
	}

	if err := d.applyDeployment(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to apply Deployment %q", d.config.DeploymentName), err)
	}

	if err := d.applyService(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to apply Service %q", d.config.ServiceName), err)
	}

	return nil
}

// ensureNamespace creates the target namespace.
// If the namespace already exists, this is a no-op (idempotent).
func (d *Deployer) ensureNamespace(ctx context.Context) error {
	ns := manifest.Namespace(d.config)
	_, err := d.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err == nil {
		slog.Info("namespace created", "namespace", d.config.Namespace)
	}
	return ignoreAlreadyExists(err)
}

// applyDeployment creates the Deployment or updates its spec and labels if
// it already exists.
func (d *Deployer) applyDeployment(ctx context.Context) error {
	desired := manifest.Deployment(d.config)
	deployments := d.clientset.AppsV1().Deployments(d.config.Namespace)

	existing, err := deployments.Get(ctx, desired.Name, metav1.GetOptions{})
	if k8serrors.IsNotFound(err) {
		_, err = deployments.Create(ctx, desired, metav1.CreateOptions{})
		if err == nil {
			slog.Info("deployment created", "name", desired.Name, "namespace", desired.Namespace)
		}
		return err
	}
	if err != nil {
		return err
	}

	existing.Labels = desired.Labels
	existing.Spec = desired.Spec
	_, err = deployments.Update(ctx, existing, metav1.UpdateOptions{})
	if err == nil {
		slog.Info("deployment updated", "name", desired.Name, "namespace", desired.Namespace)
	}
	return err
}

// applyService creates the Service or updates it in place. On update the
// allocated ClusterIP is preserved; the API rejects changes to it.
func (d *Deployer) applyService(ctx context.Context) error {
	desired := manifest.Service(d.config)
	services := d.clientset.CoreV1().Services(d.config.Namespace)

	existing, err := services.Get(ctx, desired.Name, metav1.GetOptions{})
	if k8serrors.IsNotFound(err) {
		_, err = services.Create(ctx, desired, metav1.CreateOptions{})
		if err == nil {
			slog.Info("service created", "name", desired.Name, "namespace", desired.Namespace)
		}
		return err
	}
	if err != nil {
		return err
	}

	clusterIP := existing.Spec.ClusterIP
	existing.Labels = desired.Labels
	existing.Spec = desired.Spec
	existing.Spec.ClusterIP = clusterIP
	_, err = services.Update(ctx, existing, metav1.UpdateOptions{})
	if err == nil {
		slog.Info("service updated", "name", desired.Name, "namespace", desired.Namespace)
	}
	return err
}
