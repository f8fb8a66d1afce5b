// Package shape holds the transformation engine between a stable local
// parameter schema and arbitrary, partially populated provider JSON.
//
//   - ParameterSet: ordered, optional tool parameters
//   - Assembler: builds a nested request payload from a ParameterSet
//   - Projector: reduces a provider response to caller-requested fields
//   - SearchRows: substring search over raw spreadsheet rows
//
// Everything here is pure and safe for concurrent use without locking.
package shape
