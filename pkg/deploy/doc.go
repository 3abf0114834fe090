// Package deploy reconciles the atlas-app Kubernetes resources and waits
// for rollouts.
//
// The Deployer applies desired state (create-or-update) instead of shelling
// to kubectl: namespace, Deployment, and NodePort Service are idempotent,
// the rollout restart is the same pod-template annotation patch kubectl
// uses, and rollout completion is observed via the watch API with a bounded
// context. Pod log retrieval backs the diagnostic dump on verification
// failure.
package deploy
