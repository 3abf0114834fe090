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

package manifest

import (
	"fmt"
	"os"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// LoadDeployment reads and parses an apps/v1 Deployment manifest.
// UnmarshalStrict rejects unknown fields so typos in hand-edited manifests
// fail loudly instead of being silently dropped.
func LoadDeployment(path string) (*appsv1.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest,
			fmt.Sprintf("failed to read manifest %q", path), err)
	}

	var d appsv1.Deployment
	if err := yaml.UnmarshalStrict(data, &d); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest,
			fmt.Sprintf("failed to parse Deployment manifest %q", path), err)
	}

	if d.APIVersion != "apps/v1" || d.Kind != "Deployment" {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidManifest,
			"manifest is not an apps/v1 Deployment", map[string]any{
				"path":       path,
				"apiVersion": d.APIVersion,
				"kind":       d.Kind,
			})
	}

	return &d, nil
}

// LoadService reads and parses a v1 Service manifest.
func LoadService(path string) (*corev1.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest,
			fmt.Sprintf("failed to read manifest %q", path), err)
	}

	var s corev1.Service
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest,
			fmt.Sprintf("failed to parse Service manifest %q", path), err)
	}

	if s.APIVersion != "v1" || s.Kind != "Service" {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidManifest,
			"manifest is not a v1 Service", map[string]any{
				"path":       path,
				"apiVersion": s.APIVersion,
				"kind":       s.Kind,
			})
	}

	return &s, nil
}

// Render serializes a Kubernetes object to YAML.
func Render(obj any) ([]byte, error) {
	data, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	return data, nil
}

// RenderAll serializes multiple objects into a single multi-document YAML
// stream, in order, separated by document markers.
func RenderAll(objs ...any) ([]byte, error) {
	var out []byte
	for i, obj := range objs {
		data, err := Render(obj)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			out = append(out, []byte("---\n")...)
		}
		out = append(out, data...)
	}
	return out, nil
}
