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
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// restartedAtAnnotation matches the annotation kubectl uses for
// `kubectl rollout restart`, so restarts triggered here and by kubectl
// are interchangeable.
const restartedAtAnnotation = "kubectl.kubernetes.io/restartedAt"

// runIDAnnotation records which pipeline run triggered the restart.
const runIDAnnotation = "atlasctl.atlasproject.io/run-id"

// RolloutRestart recreates the Deployment's pods in place by patching the
// pod template annotations. With pull policy Never and a stable tag, this
// is how a freshly built image is picked up.
func (d *Deployer) RolloutRestart(ctx context.Context, runID string) error {
	annotations := map[string]string{
		restartedAtAnnotation: time.Now().UTC().Format(time.RFC3339),
	}
	if runID != "" {
		annotations[runIDAnnotation] = runID
	}

	patch, err := json.Marshal(map[string]any{
		"spec": map[string]any{
			"template": map[string]any{
				"metadata": map[string]any{
					"annotations": annotations,
				},
			},
		},
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode restart patch", err)
	}

	_, err = d.clientset.AppsV1().Deployments(d.config.Namespace).Patch(
		ctx,
		d.config.DeploymentName,
		types.StrategicMergePatchType,
		patch,
		metav1.PatchOptions{},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to restart Deployment %q", d.config.DeploymentName), err)
	}

	slog.Info("rollout restart triggered",
		"name", d.config.DeploymentName,
		"namespace", d.config.Namespace,
		"runID", runID)
	return nil
}
