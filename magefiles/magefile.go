//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "peano"
	binaryDir  = "bin"
	cmdDir     = "./cmd/peano"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the peano binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Test groups test targets.
type Test mg.Namespace

// All runs every package test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Scenarios runs the shipped harness scenarios through the CLI.
func (Test) Scenarios() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "test",
		"--golden", "internal/harness/testdata/golden",
		"internal/harness/testdata/scenarios")
}

// Golden regenerates golden files for the packages that keep them.
func (Test) Golden() error {
	for _, pkg := range []string{"./internal/harness", "./internal/residue", "./internal/vonneumann"} {
		if err := sh.RunV(binGo, "test", pkg, "-update"); err != nil {
			return err
		}
	}
	return nil
}
