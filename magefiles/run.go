//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the testbed window.
func (Run) Testbed() error {
	fmt.Println("Run testbed...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml"), withStream())
	return err
}

// Renders the testbed without a window into ./frames.
func (Run) Headless() error {
	fmt.Println("Run headless testbed...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml", "-headless", "-out", "frames"), withStream())
	return err
}
