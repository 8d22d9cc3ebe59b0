// Package model defines the typed form model consumed by renderers. A form is
// an ordered list of PartialFormField values, each naming the glossary key it
// edits, the widget descriptor that collects it, and its label and help text.
// Fields are rebuilt on every form request so per-site configuration changes
// take effect without restarts.
package model
