// Package model defines the typed values that flow through a generation
// cycle: the FormInput snapshot taken at submit time, the Tone that selects a
// fallback Template, and the GeneratedContent handed to the presentation
// layer. Renderers, the remote generator client and the submission
// orchestrator all exchange these types so no package needs to know about the
// others' internals.
package model
