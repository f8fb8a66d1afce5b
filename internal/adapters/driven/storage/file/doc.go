// Package file provides a JSON token file credential store.
//
// The file layout matches the authorized-user token files written by the
// Google client libraries ("token", "refresh_token", "expiry", "scopes"), so
// a token minted by another tool can be reused as-is. Keys this store does
// not model, such as client_id or token_uri, are preserved on save.
package file
