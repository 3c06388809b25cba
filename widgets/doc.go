// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing and composition helpers (pane chrome, stacks, tables, charts)
// - the popup overlay compositor
//
// Not allowed here:
// - key handling, module state transitions, scope logic, or navigation policy
package widgets
