// Package k8s groups Kubernetes integration packages: client construction
// (client) used by the deploy and pipeline packages.
package k8s
