// Package errors provides structured error types for the atlasctl pipeline.
//
// Errors carry a classification code so callers can react programmatically:
// build failures, apply failures, rollout timeouts, and health-check
// failures each map to a distinct code. Codes surface in logs and in the
// pipeline report.
//
// Usage:
//
//	if err := builder.Build(ctx); err != nil {
//	    return errors.Wrap(errors.ErrCodeBuildFailed, "image build failed", err)
//	}
package errors
