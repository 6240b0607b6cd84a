// Package templates holds the local fallback wording used when the remote
// generator is unavailable. A Store maps each tone to a Template loaded from
// JSON or YAML files (the stock set is embedded, see DefaultsFS) and a
// Substituter replaces the recognised bracket placeholders ([Name], [Age],
// [Details], [Date]) with literal values. Unrecognised tokens such as
// [Location] pass through unchanged; Unresolved lists them for callers that
// want to log or flag incomplete output.
package templates
