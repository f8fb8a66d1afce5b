// Package domain defines the core types shared by toolbridge's tools.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CredentialRecord: A stored OAuth token and its lifecycle state
//   - Payload: A request body or query handed to a provider transport
//   - RowMatch: A spreadsheet row matched by a search
//   - Settings: Application configuration resolved from file and environment
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
