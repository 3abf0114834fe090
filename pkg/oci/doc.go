// Package oci publishes rendered deployment bundles (manifests plus CI
// workflow) as OCI artifacts, so a bundle can be versioned and distributed
// through a container registry alongside the app image.
package oci
