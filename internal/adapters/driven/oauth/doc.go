// Package oauth implements the installed-application OAuth flow for the
// spreadsheet provider.
//
// Flow runs the interactive authorization (PKCE, loopback callback server,
// browser launch) and refreshes expired access tokens. Both read the OAuth
// client from the client_secrets.json downloaded from the Google Cloud
// console; a missing file is reported as domain.ErrConfigMissing.
package oauth
