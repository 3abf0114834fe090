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

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Cleanup removes the deployed resources. Deletion is idempotent; missing
// resources are not an error. With DeleteNamespace set, the namespace is
// removed instead, taking everything in it along.
func (d *Deployer) Cleanup(ctx context.Context, opts CleanupOptions) error {
	if opts.DeleteNamespace {
		err := d.clientset.CoreV1().Namespaces().
			Delete(ctx, d.config.Namespace, metav1.DeleteOptions{})
		if err := ignoreNotFound(err); err != nil {
			return fmt.Errorf("failed to delete namespace %q: %w", d.config.Namespace, err)
		}
		slog.Info("namespace deleted", "namespace", d.config.Namespace)
		return nil
	}

	err := d.clientset.CoreV1().Services(d.config.Namespace).
		Delete(ctx, d.config.ServiceName, metav1.DeleteOptions{})
	if err := ignoreNotFound(err); err != nil {
		return fmt.Errorf("failed to delete Service %q: %w", d.config.ServiceName, err)
	}

	propagation := metav1.DeletePropagationForeground
	err = d.clientset.AppsV1().Deployments(d.config.Namespace).
		Delete(ctx, d.config.DeploymentName, metav1.DeleteOptions{
			PropagationPolicy: &propagation,
		})
	if err := ignoreNotFound(err); err != nil {
		return fmt.Errorf("failed to delete Deployment %q: %w", d.config.DeploymentName, err)
	}

	slog.Info("resources deleted",
		"namespace", d.config.Namespace,
		"deployment", d.config.DeploymentName,
		"service", d.config.ServiceName)
	return nil
}
