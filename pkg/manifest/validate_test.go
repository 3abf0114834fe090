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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
)

func TestValidateDeployment_ProbePortMismatch(t *testing.T) {
	// The historical misconfiguration: container on 5000, probe on 8000.
	d := Deployment(DefaultConfig())
	d.Spec.Template.Spec.Containers[0].ReadinessProbe.HTTPGet.Port = intstr.FromInt32(8000)

	res := ValidateDeployment(d)
	require.False(t, res.OK())

	found := false
	for _, f := range res.Findings {
		if f.Severity == SeverityError && strings.Contains(f.Message, "8000") {
			found = true
		}
	}
	assert.True(t, found, "expected an error finding about probe port 8000, got %+v", res.Findings)
}

func TestValidateDeployment_SelectorMismatch(t *testing.T) {
	d := Deployment(DefaultConfig())
	d.Spec.Template.Labels = map[string]string{"app": "other-app"}

	res := ValidateDeployment(d)
	assert.False(t, res.OK())
}

func TestValidateDeployment_ZeroReplicas(t *testing.T) {
	d := Deployment(DefaultConfig())
	d.Spec.Replicas = ptr.To(int32(0))

	res := ValidateDeployment(d)
	assert.False(t, res.OK())
}

func TestValidateDeployment_Valid(t *testing.T) {
	res := ValidateDeployment(Deployment(DefaultConfig()))
	assert.True(t, res.OK())
	assert.Empty(t, res.Findings)
}

func TestValidateService_NodePortRange(t *testing.T) {
	s := Service(DefaultConfig())
	s.Spec.Ports[0].NodePort = 8080

	res := ValidateService(s)
	assert.False(t, res.OK())
}

func TestValidateSet_ServiceTargetsUndeclaredPort(t *testing.T) {
	cfg := DefaultConfig()
	d := Deployment(cfg)
	s := Service(cfg)
	s.Spec.Ports[0].TargetPort = intstr.FromInt32(9999)

	res := ValidateSet(d, s)
	assert.False(t, res.OK())
}

func TestValidateSet_SelectorDrift(t *testing.T) {
	cfg := DefaultConfig()
	d := Deployment(cfg)
	s := Service(cfg)
	s.Spec.Selector = map[string]string{"app": "not-atlas"}

	res := ValidateSet(d, s)
	assert.False(t, res.OK())
}
