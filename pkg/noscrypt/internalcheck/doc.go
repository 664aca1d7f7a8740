// Package internalcheck holds source policy tests for the noscrypt packages.
//
// The tests load the packages with golang.org/x/tools/go/packages and walk
// their syntax trees looking for patterns that leak or mishandle key
// material: variable-time comparison of byte buffers, hex formatting verbs
// in format strings and log attributes named after secrets.
//
// The package has no exported API and is never imported.
package internalcheck
