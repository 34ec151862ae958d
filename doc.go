// Package barg implements a declarative command-line argument parser
// driven by a small embedded DSL. Callers write a block of DSL text
// describing a program's options, subcommands, and metadata; ParseOrError
// consumes that text together with a raw argv vector and produces typed
// output bindings, a subcommand selection, leftover positional tokens,
// and a record of which bindings were set from argv versus defaulted.
package barg
