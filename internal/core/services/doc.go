// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - CredentialManager: OAuth credential lifecycle (load, refresh, authorize)
//   - PeopleService: people and company search with field projection
//   - SheetsService: spreadsheet reads, writes, row search, CSV upload
//   - SettingsService: configuration with environment overrides
package services
