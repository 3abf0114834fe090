// Package cli implements the atlasctl command tree: up (full pipeline),
// build, deploy, verify, logs, validate, workflow, bundle, and down.
package cli
