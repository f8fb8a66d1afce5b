// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PeopleProvider: People and company data (Apollo)
//   - SheetsProvider: Spreadsheet reads and writes (Google Sheets)
//   - DriveProvider: Spreadsheet discovery (Google Drive)
//   - CredentialStore: OAuth credential persistence
//   - Authorizer: Interactive OAuth authorization
//   - TokenRefresher: OAuth token refresh
//   - TableReader: Local tabular files for upload
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
