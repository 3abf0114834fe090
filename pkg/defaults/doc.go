// Package defaults centralizes the deployment target names, ports, and
// timeout ceilings shared by the CLI, the pipeline, and the manifest
// builders. Keeping them in one place prevents drift between the flags,
// the generated manifests, and the CI workflow.
package defaults
