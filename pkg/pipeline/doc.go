// Package pipeline orchestrates the build, deploy, and verify steps for the
// app as one idempotent run: preflight checks the build daemon and cluster
// API concurrently, build produces the image into the cluster node's daemon,
// deploy reconciles the manifests and waits for rollout, and verify polls
// the health endpoint through the NodePort. Every run produces a Report
// with a unique run ID; the run ID is also stamped onto the pod template so
// a rollout can be traced back to the run that caused it.
package pipeline
