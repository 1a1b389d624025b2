//go:build debug

package buffer

const debugChecks = true
