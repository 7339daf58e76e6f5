//go:build aoidebug
// +build aoidebug

package aoi

// built with -tags aoidebug: self-check after every operation
const debugChecks = true
