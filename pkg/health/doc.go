// Package health verifies a deployed service by polling its HTTP health
// endpoint with bounded, rate-paced retries and a per-attempt timeout.
// The check reports the status field from the JSON response body alongside
// the HTTP status code.
package health
