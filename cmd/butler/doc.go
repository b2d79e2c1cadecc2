// Package main hosts the Butler CLI entrypoint and command graph.
//
// The Cobra-based command tree drives one-shot batch runs against the drop
// directory, relocation history queries against the audit store, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
