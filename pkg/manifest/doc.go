// Package manifest builds, loads, renders, and validates the Kubernetes
// objects that make up the atlas-app deployment target: the Namespace, the
// Deployment, and the NodePort Service.
//
// The builders are the source of truth for the declarative deploy path; the
// YAML loaders exist so externally maintained manifests can be validated and
// applied with the same invariant checks (label/selector consistency,
// probe-port/container-port agreement, NodePort range).
package manifest
