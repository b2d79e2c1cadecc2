// Package services carries the cross-cutting error taxonomy and context
// annotations shared by butler's pipeline components and external
// collaborators.
//
// Every per-file failure is tagged with one of the sentinel markers so the
// router can map it to a terminal outcome (quarantine, leave in place)
// without inspecting component internals.
package services
