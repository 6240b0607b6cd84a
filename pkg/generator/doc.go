// Package generator implements the client for the remote obituary generation
// endpoint. A Client posts the form fields url-encoded, validates the JSON
// reply against the embedded OpenAPI contract and returns either the generated
// markup or a *Failure describing why the call produced nothing usable. There
// are no retries: every Submit is exactly one round trip.
package generator
