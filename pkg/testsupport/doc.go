// Package testsupport holds fixtures shared by package tests: a sample column
// plugin, a fully enabled extra fields record, and request helpers.
package testsupport
