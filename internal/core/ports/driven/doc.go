// Package driven defines interfaces the core depends on: the SQL engine,
// the archive extraction capability, the media resource store, the config
// store and the outbound card-request router. These are the "driven" ports
// in hexagonal architecture terminology - the application drives them.
//
// Implementations live in internal/adapters/driven.
package driven
