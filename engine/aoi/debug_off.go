//go:build !aoidebug
// +build !aoidebug

package aoi

const debugChecks = false
