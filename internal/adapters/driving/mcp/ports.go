package mcp

import (
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// People backs search_people, enrich_person and search_companies.
	People driving.PeopleService

	// Sheets backs the spreadsheet tools.
	Sheets driving.SheetsService

	// Credentials backs the auth status resource. Optional.
	Credentials driving.CredentialService
}

// Validate ensures at least one tool service is set.
func (p *Ports) Validate() error {
	if p.People == nil && p.Sheets == nil {
		return ErrNoToolServices
	}
	return nil
}
