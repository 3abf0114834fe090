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

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityError findings make the manifest unusable for the pipeline.
	SeverityError Severity = "error"
	// SeverityWarning findings are suspicious but not fatal.
	SeverityWarning Severity = "warning"
)

// Finding is a single validation result.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Field    string   `json:"field" yaml:"field"`
	Message  string   `json:"message" yaml:"message"`
}

// Result aggregates validation findings for a manifest set.
type Result struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether the result carries no error-severity findings.
func (r *Result) OK() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *Result) errorf(field, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: SeverityError,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Result) warnf(field, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: SeverityWarning,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

// ValidateDeployment checks the structural invariants the pipeline depends
// on: a positive replica count, selector/template label agreement, a
// declared container port, and a readiness probe that targets a declared
// port. A probe aimed at an undeclared port is the classic misconfiguration
// this validation exists to catch.
func ValidateDeployment(d *appsv1.Deployment) *Result {
	res := &Result{}

	if d.Spec.Replicas == nil || *d.Spec.Replicas < 1 {
		res.errorf("spec.replicas", "replicas must be at least 1")
	}

	if d.Spec.Selector == nil || len(d.Spec.Selector.MatchLabels) == 0 {
		res.errorf("spec.selector", "selector.matchLabels must not be empty")
	} else {
		for k, v := range d.Spec.Selector.MatchLabels {
			if got, ok := d.Spec.Template.Labels[k]; !ok || got != v {
				res.errorf("spec.template.metadata.labels",
					"selector %s=%s does not match template label %s=%s", k, v, k, got)
			}
		}
	}

	if len(d.Spec.Template.Spec.Containers) == 0 {
		res.errorf("spec.template.spec.containers", "at least one container is required")
		return res
	}

	for _, c := range d.Spec.Template.Spec.Containers {
		field := fmt.Sprintf("spec.template.spec.containers[%s]", c.Name)

		declared := map[int32]bool{}
		for _, p := range c.Ports {
			declared[p.ContainerPort] = true
		}
		if len(declared) == 0 {
			res.warnf(field+".ports", "container declares no ports")
		}

		if c.ReadinessProbe != nil && c.ReadinessProbe.HTTPGet != nil {
			probePort := c.ReadinessProbe.HTTPGet.Port.IntVal
			if probePort != 0 && !declared[probePort] {
				res.errorf(field+".readinessProbe.httpGet.port",
					"readiness probe targets port %d, which the container does not declare", probePort)
			}
		}

		if c.ImagePullPolicy == corev1.PullNever && c.Image == "" {
			res.errorf(field+".image", "image must be set when pull policy is Never")
		}
	}

	return res
}

// ValidateService checks the Service shape the verification step depends on:
// NodePort type, a port entry, and a node port in the allocatable range.
func ValidateService(s *corev1.Service) *Result {
	res := &Result{}

	if s.Spec.Type != corev1.ServiceTypeNodePort {
		res.errorf("spec.type", "service type must be NodePort, got %q", s.Spec.Type)
	}

	if len(s.Spec.Ports) == 0 {
		res.errorf("spec.ports", "at least one port is required")
		return res
	}

	for i, p := range s.Spec.Ports {
		if p.NodePort != 0 && (p.NodePort < 30000 || p.NodePort > 32767) {
			res.errorf(fmt.Sprintf("spec.ports[%d].nodePort", i),
				"nodePort %d outside the default allocatable range 30000-32767", p.NodePort)
		}
	}

	if len(s.Spec.Selector) == 0 {
		res.errorf("spec.selector", "selector must not be empty")
	}

	return res
}

// ValidateSet cross-checks a Deployment and its Service: the Service
// selector must match the pod template labels and the Service target port
// must be declared by a container.
func ValidateSet(d *appsv1.Deployment, s *corev1.Service) *Result {
	res := &Result{}
	res.Findings = append(res.Findings, ValidateDeployment(d).Findings...)
	res.Findings = append(res.Findings, ValidateService(s).Findings...)

	for k, v := range s.Spec.Selector {
		if got, ok := d.Spec.Template.Labels[k]; !ok || got != v {
			res.errorf("service.spec.selector",
				"service selector %s=%s does not match pod template label %s=%s", k, v, k, got)
		}
	}

	declared := map[int32]bool{}
	for _, c := range d.Spec.Template.Spec.Containers {
		for _, p := range c.Ports {
			declared[p.ContainerPort] = true
		}
	}
	for i, p := range s.Spec.Ports {
		if p.TargetPort.IntVal != 0 && !declared[p.TargetPort.IntVal] {
			res.errorf(fmt.Sprintf("service.spec.ports[%d].targetPort", i),
				"service target port %d is not declared by any container", p.TargetPort.IntVal)
		}
	}

	return res
}
