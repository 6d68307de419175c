// Package domain defines the core business entities for docview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Value: A typed field value (null, string, number, boolean, timestamp, map, array)
//   - Fields: An ordered field name to Value mapping
//   - Document: A store-assigned identifier plus its Fields
//   - Collection: A named, ordered list of Documents
//   - Draft: Client-side string fields destined to become a new Document
//   - EditSession: A mutable text copy of one Document's fields
//   - ViewState: The viewer's complete state and its pure transitions
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
