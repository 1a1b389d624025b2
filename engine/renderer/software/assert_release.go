//go:build !debug

package software

const debugChecks = false
