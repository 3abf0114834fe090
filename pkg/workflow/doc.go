// Package workflow generates the GitHub Actions CI workflow for the app:
// checkout, minikube startup, image build and load, manifest apply, and a
// smoke test of the health endpoint. The document is built from typed
// structs and marshaled to YAML rather than templated text, so the output
// is always well-formed.
package workflow
