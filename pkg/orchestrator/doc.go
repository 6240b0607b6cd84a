// Package orchestrator runs one submission cycle: validate the form snapshot,
// call the remote generator, and fall back to local template substitution when
// the call yields nothing usable. Each phase is published as a Snapshot to an
// optional View so front ends (HTML page, terminal) render state without the
// transition logic knowing about them.
package orchestrator
