//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "flashpage"

// Default target to run when none is specified
var Default = Build

// Build compiles the flashpage binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/flashpage")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs flashpage into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/flashpage")
}

// Clean removes the built binary
func Clean() error {
	if err := os.Remove(binary); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
