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
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/kubernetes"

	"github.com/atlasproject/atlasctl/pkg/manifest"
)

// Deployer reconciles the atlas-app resources against the cluster and
// waits for rollouts to complete.
type Deployer struct {
	clientset kubernetes.Interface
	config    manifest.Config
}

// NewDeployer creates a Deployer for the given target configuration.
func NewDeployer(clientset kubernetes.Interface, config manifest.Config) *Deployer {
	return &Deployer{
		clientset: clientset,
		config:    config,
	}
}

// Config returns the target configuration the Deployer reconciles toward.
func (d *Deployer) Config() manifest.Config {
	return d.config
}

// CleanupOptions controls what resources to remove during cleanup.
type CleanupOptions struct {
	// DeleteNamespace removes the whole namespace instead of just the
	// Deployment and Service.
	DeleteNamespace bool
}

// selector returns the label selector matching the app's pods.
func (d *Deployer) selector() string {
	return "app=" + d.config.AppLabel
}

// ignoreAlreadyExists returns nil if the error is "already exists", otherwise returns the error.
// Used to make resource creation idempotent.
func ignoreAlreadyExists(err error) error {
	if errors.IsAlreadyExists(err) {
		return nil
	}
	return err
}

// ignoreNotFound returns nil if the error is "not found", otherwise returns the error.
// Used to make resource deletion idempotent.
func ignoreNotFound(err error) error {
	if errors.IsNotFound(err) {
		return nil
	}
	return err
}
