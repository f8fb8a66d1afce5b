// Package google provides the spreadsheet and document providers backed by
// the Google Sheets v4 and Drive v3 APIs.
//
// Requests are authenticated through a TokenSource that asks the credential
// manager for a token on every call, so a refresh or re-authorization done
// elsewhere is picked up without rebuilding the clients. Requests are
// throttled by a ratelimit.Transport.
//
// # Usage
//
//	client := google.NewHTTPClient(google.NewTokenSource(ctx, manager), limiter, 30*time.Second)
//	sheets, err := google.NewSheets(ctx, client)
//	drive, err := google.NewDrive(ctx, client)
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/spreadsheets
//   - https://www.googleapis.com/auth/drive.readonly
package google
