// Package file provides the TOML configuration store.
// Configuration lives in ~/.toolbridge/config.toml and is exposed as
// dot-notation keys, so [apollo] api_key reads as "apollo.api_key".
package file
