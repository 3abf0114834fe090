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

package defaults

import "time"

// Deployment target defaults.
const (
	// Namespace is the namespace all atlas-app resources live in.
	Namespace = "atlas"

	// DeploymentName is the name of the atlas-app Deployment.
	DeploymentName = "atlas-deployment"

	// ServiceName is the name of the NodePort Service fronting the app.
	ServiceName = "atlas-service"

	// AppLabel is the value of the "app" label shared by the Deployment
	// selector, the pod template, and the Service selector.
	AppLabel = "atlas-app"

	// Image is the locally built image reference. The Deployment uses pull
	// policy Never, so the tag is stable and the rollout restart picks up
	// rebuilds.
	Image = "atlas-app:latest"

	// ContainerPort is the port the application listens on. The readiness
	// probe targets the same port.
	ContainerPort int32 = 5000

	// NodePort is the port exposed on every cluster node by the Service.
	NodePort int32 = 30080

	// Replicas is the desired replica count for the Deployment.
	Replicas int32 = 1

	// HealthPath is the HTTP path of the application health endpoint.
	HealthPath = "/health"
)

// Build defaults.
const (
	// MinikubeProfile is the cluster profile whose container daemon
	// receives the image build.
	MinikubeProfile = "minikube"

	// BuildTimeout bounds the container image build.
	BuildTimeout = 10 * time.Minute
)

// Wait and verification timeouts.
const (
	// RolloutTimeout is the ceiling for waiting on Deployment rollout
	// completion after an apply or restart.
	RolloutTimeout = 120 * time.Second

	// HealthTimeout is the per-attempt timeout for the health check GET.
	HealthTimeout = 5 * time.Second

	// HealthAttempts is the number of health check attempts before the
	// verification step reports failure.
	HealthAttempts = 5

	// HealthInterval is the pacing between health check attempts.
	HealthInterval = 2 * time.Second

	// K8sRequestTimeout bounds individual Kubernetes API calls that are
	// not covered by a longer wait ceiling.
	K8sRequestTimeout = 30 * time.Second
)
