// Package orchestrator wires the plugin pool, extra-fields decoration, form
// decorators, and the renderer registry into a single entry point for admin
// surfaces: build a plugin's form, render it, decode a submission, and
// preview a block's opening tag.
package orchestrator
