// Package build runs the container image build step of the pipeline.
//
// The image is built with the docker CLI against the cluster node's
// container daemon (resolved from `minikube docker-env`), so the Deployment
// can use pull policy Never and never touch a registry. External tool
// invocation goes through the CommandRunner interface to keep the step
// testable without docker or minikube installed.
package build
