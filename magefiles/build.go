//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the testbed with per-pixel bounds assertions enabled.
func (Build) Debug() error {
	_, err := executeCmd("go", withArgs("build", "-tags", "debug", "-o", "bin/softraster-debug", "."), withStream())
	return err
}

// Builds the optimized testbed binary.
func (Build) Release() error {
	_, err := executeCmd("go", withArgs("build", "-trimpath", "-ldflags", "-s -w", "-o", "bin/softraster", "."), withStream())
	return err
}

// Builds a binary without the window presenter. It needs neither cgo nor a
// display server and only renders with -headless.
func (Build) Headless() error {
	_, err := executeCmd("go", withArgs("build", "-tags", "headless", "-o", "bin/softraster-headless", "."), withEnv("CGO_ENABLED=0"), withStream())
	return err
}
