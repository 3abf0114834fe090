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

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

// ServiceNodePort returns the node port allocated to the Service's first
// port. The verification step dials this port on a node address.
func (d *Deployer) ServiceNodePort(ctx context.Context) (int32, error) {
	svc, err := d.clientset.CoreV1().Services(d.config.Namespace).
		Get(ctx, d.config.ServiceName, metav1.GetOptions{})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeNotFound,
			fmt.Sprintf("failed to get Service %q", d.config.ServiceName), err)
	}

	if len(svc.Spec.Ports) == 0 || svc.Spec.Ports[0].NodePort == 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidManifest,
			fmt.Sprintf("Service %q has no node port allocated", d.config.ServiceName))
	}

	return svc.Spec.Ports[0].NodePort, nil
}

// NodeAddress resolves an address for reaching node ports, preferring an
// external address and falling back to an internal one. Single-node local
// clusters report only an internal address.
func (d *Deployer) NodeAddress(ctx context.Context) (string, error) {
	nodes, err := d.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to list nodes", err)
	}
	if len(nodes.Items) == 0 {
		return "", apperrors.New(apperrors.ErrCodeNotFound, "cluster has no nodes")
	}

	var internal string
	for _, node := range nodes.Items {
		for _, addr := range node.Status.Addresses {
			switch addr.Type {
			case corev1.NodeExternalIP:
				return addr.Address, nil
			case corev1.NodeInternalIP:
				if internal == "" {
					internal = addr.Address
				}
			}
		}
	}

	if internal == "" {
		return "", apperrors.New(apperrors.ErrCodeNotFound, "no node address found")
	}
	return internal, nil
}
