// Package domain defines the core entities for mnemo.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Collection: A decoded snapshot of cards, notes, metadata and revisions
//   - Card: One schedulable review unit referencing a note and a template
//   - Note: One content unit holding delimiter-joined field values
//   - MediaManifest: Archive-internal names mapped to display filenames
//   - Row: One ordered query result row from the SQL engine
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
