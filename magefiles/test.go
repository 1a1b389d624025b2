//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every test, with debug assertions on.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-tags", "debug", "./..."), withStream())
	return err
}

// Runs every test with the race detector, which needs cgo.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withEnv("CGO_ENABLED=1"), withStream())
	return err
}
