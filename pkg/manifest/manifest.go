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
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/atlasproject/atlasctl/pkg/defaults"
)

// appLabelKey is the label key shared by the Deployment selector, the pod
// template, and the Service selector.
const appLabelKey = "app"

// Config describes the desired atlas-app deployment target.
type Config struct {
	Namespace      string `json:"namespace" yaml:"namespace"`
	DeploymentName string `json:"deploymentName" yaml:"deploymentName"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	AppLabel       string `json:"appLabel" yaml:"appLabel"`
	Image          string `json:"image" yaml:"image"`
	Replicas       int32  `json:"replicas" yaml:"replicas"`
	ContainerPort  int32  `json:"containerPort" yaml:"containerPort"`
	NodePort       int32  `json:"nodePort" yaml:"nodePort"`
	HealthPath     string `json:"healthPath" yaml:"healthPath"`
}

// DefaultConfig returns the canonical atlas-app target: namespace "atlas",
// Deployment "atlas-deployment" with a single replica of the locally built
// image, and a NodePort Service on 30080.
func DefaultConfig() Config {
	return Config{
		Namespace:      defaults.Namespace,
		DeploymentName: defaults.DeploymentName,
		ServiceName:    defaults.ServiceName,
		AppLabel:       defaults.AppLabel,
		Image:          defaults.Image,
		Replicas:       defaults.Replicas,
		ContainerPort:  defaults.ContainerPort,
		NodePort:       defaults.NodePort,
		HealthPath:     defaults.HealthPath,
	}
}

// labels returns the label set applied to all generated resources.
func (c Config) labels() map[string]string {
	return map[string]string{appLabelKey: c.AppLabel}
}

// Namespace builds the Namespace object for the deployment target.
func Namespace(cfg Config) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   cfg.Namespace,
			Labels: cfg.labels(),
		},
	}
}

// Deployment builds the atlas-app Deployment.
//
// The image pull policy is Never: the image is built directly into the
// cluster node's container daemon and must not be fetched from a registry.
// The readiness probe targets the declared container port on the health
// path; the probe and the container always share a port.
func Deployment(cfg Config) *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.DeploymentName,
			Namespace: cfg.Namespace,
			Labels:    cfg.labels(),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(cfg.Replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: cfg.labels(),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: cfg.labels(),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:            cfg.AppLabel,
							Image:           cfg.Image,
							ImagePullPolicy: corev1.PullNever,
							Ports: []corev1.ContainerPort{
								{
									Name:          "http",
									ContainerPort: cfg.ContainerPort,
									Protocol:      corev1.ProtocolTCP,
								},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: cfg.HealthPath,
										Port: intstr.FromInt32(cfg.ContainerPort),
									},
								},
								InitialDelaySeconds: 2,
								PeriodSeconds:       5,
								FailureThreshold:    3,
							},
							Resources: corev1.ResourceRequirements{
								Requests: corev1.ResourceList{
									corev1.ResourceCPU:    resource.MustParse("100m"),
									corev1.ResourceMemory: resource.MustParse("128Mi"),
								},
								Limits: corev1.ResourceList{
									corev1.ResourceCPU:    resource.MustParse("500m"),
									corev1.ResourceMemory: resource.MustParse("256Mi"),
								},
							},
						},
					},
				},
			},
		},
	}
}

// Service builds the NodePort Service exposing the app on every cluster node.
func Service(cfg Config) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.ServiceName,
			Namespace: cfg.Namespace,
			Labels:    cfg.labels(),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeNodePort,
			Selector: cfg.labels(),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       cfg.ContainerPort,
					TargetPort: intstr.FromInt32(cfg.ContainerPort),
					NodePort:   cfg.NodePort,
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}
