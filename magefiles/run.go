//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the binary and runs it against exhibit.toml.
func (Run) Exhibit() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run exhibit...")
	if _, err := executeCmd("bin/exhibit", withArgs("-config", "exhibit.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
