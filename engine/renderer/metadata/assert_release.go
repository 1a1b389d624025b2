//go:build !debug

package metadata

const debugChecks = false
