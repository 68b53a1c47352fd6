// Package services implements the driving port interfaces.
// It holds the collection model state machine, the relational projection
// and the media resolution queue, and orchestrates the driven ports
// (SQL engine, archive opener, resource store, card router).
//
// Services are pure Go with no CGO or external dependencies.
package services
