//go:build debug

package metadata

const debugChecks = true
