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
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/apimachinery/pkg/watch"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// WaitForRollout blocks until the Deployment's rollout completes or the
// timeout elapses. It checks the current status first and falls back to the
// watch API, so an already-complete rollout returns immediately.
func (d *Deployer) WaitForRollout(ctx context.Context, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	deployments := d.clientset.AppsV1().Deployments(d.config.Namespace)

	current, err := deployments.Get(timeoutCtx, d.config.DeploymentName, metav1.GetOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to get Deployment %q", d.config.DeploymentName), err)
	}
	if rolloutComplete(current) {
		return nil
	}

	// Use watch API for efficient polling
	watcher, err := deployments.Watch(timeoutCtx, metav1.ListOptions{
		FieldSelector:   fmt.Sprintf("metadata.name=%s", d.config.DeploymentName),
		ResourceVersion: current.ResourceVersion,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to watch Deployment", err)
	}
	defer watcher.Stop()

	for {
		select {
		case <-timeoutCtx.Done():
			return apperrors.NewWithContext(apperrors.ErrCodeTimeout,
				fmt.Sprintf("timeout waiting for rollout of %q after %v", d.config.DeploymentName, timeout),
				map[string]any{
					"namespace": d.config.Namespace,
					"status":    rolloutStatus(current),
				})

		case event, ok := <-watcher.ResultChan():
			if !ok {
				return apperrors.New(apperrors.ErrCodeInternal, "watch channel closed unexpectedly")
			}

			if event.Type == watch.Error {
				return apperrors.New(apperrors.ErrCodeInternal,
					fmt.Sprintf("watch error: %v", event.Object))
			}

			dep, ok := event.Object.(*appsv1.Deployment)
			if !ok {
				continue
			}
			current = dep

			if rolloutComplete(dep) {
				return nil
			}
		}
	}
}

// WaitForPodsReady polls until every pod matching the app selector reports
// the Ready condition. This is a belt-and-braces check after the rollout
// completes, and a useful wait primitive on its own.
func (d *Deployer) WaitForPodsReady(ctx context.Context, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, 500*time.Millisecond, timeout, true,
		func(ctx context.Context) (bool, error) {
			pods, err := d.clientset.CoreV1().Pods(d.config.Namespace).List(ctx, metav1.ListOptions{
				LabelSelector: d.selector(),
			})
			if err != nil {
				return false, err
			}

			if len(pods.Items) == 0 {
				return false, nil // Pods not created yet
			}

			for _, pod := range pods.Items {
				if pod.Status.Phase == corev1.PodFailed {
					return false, fmt.Errorf("pod %s failed: %s", pod.Name, pod.Status.Message)
				}
				if !podReady(&pod) {
					return false, nil // Keep waiting
				}
			}
			return true, nil
		},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeTimeout,
			fmt.Sprintf("pods with selector %q not ready within %v", d.selector(), timeout), err)
	}
	return nil
}

// rolloutComplete reports whether the Deployment has converged: the
// controller has observed the latest generation and all replicas are
// updated, ready, and available.
func rolloutComplete(d *appsv1.Deployment) bool {
	if d.Generation > d.Status.ObservedGeneration {
		return false
	}

	var desired int32 = 1
	if d.Spec.Replicas != nil {
		desired = *d.Spec.Replicas
	}

	return d.Status.UpdatedReplicas == desired &&
		d.Status.ReadyReplicas == desired &&
		d.Status.AvailableReplicas == desired
}

// rolloutStatus summarizes a Deployment's replica counters for diagnostics.
func rolloutStatus(d *appsv1.Deployment) string {
	return fmt.Sprintf("updated=%d ready=%d available=%d",
		d.Status.UpdatedReplicas, d.Status.ReadyReplicas, d.Status.AvailableReplicas)
}

// podReady reports whether the pod carries a true Ready condition.
func podReady(pod *corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
