//go:build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// unexported constants.
const (
	binaryName   = "lazyls"
	mainPackage  = "./cmd/lazyls"
	coverProfile = "coverage.out"
)

// Default target to run when none is specified
var Default = Build

// Build builds the lazyls binary
func Build() error {
	fmt.Println("Building " + binaryName + "...")
	return sh.Run("go", "build", "-o", binaryName, mainPackage)
}

// Install installs lazyls into GOBIN
func Install() error {
	fmt.Println("Installing " + binaryName + "...")
	return sh.Run("go", "install", mainPackage)
}

// Test runs the unit tests with the race detector and coverage
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "-coverprofile="+coverProfile, "./...")
}

// TestForFail runs the unit tests purely to find out whether any fail
func TestForFail() error {
	fmt.Println("Running unit tests for overall pass/fail...")
	return run(context.Background(),
		"go", "test", "-timeout=10s", "-failfast", "-shuffle=on", "-race", "./...")
}

// Integration runs the tests behind the integration build tag, which list
// large and changing directories on the local disk
func Integration() error {
	fmt.Println("Running integration tests...")
	return sh.RunV("go", "test", "-tags=integration", "-race", "./tests/integration/...")
}

// Lint lints the codebase
func Lint() error {
	fmt.Println("Linting...")
	return run(context.Background(), "golangci-lint", "run", "./...")
}

// Fmt formats the code
func Fmt() error {
	fmt.Println("Formatting code...")

	err := sh.Run("gofmt", "-s", "-w", ".")
	if err != nil {
		return err
	}

	return sh.Run("goimports", "-w", ".")
}

// CheckNils checks for nils
func CheckNils() error {
	fmt.Println("Running check for nils...")
	return run(context.Background(), "nilaway", "./...")
}

// Check runs formatting, lint, unit and integration tests, and the nil check
func Check() {
	mg.SerialDeps(Fmt, Lint, Test, Integration, CheckNils)
}

// Coverage generates an HTML coverage report
func Coverage() error {
	mg.Deps(Test)

	fmt.Println("Generating coverage report...")

	return sh.Run("go", "tool", "cover", "-html="+coverProfile, "-o", "coverage.html")
}

// Clean removes build artifacts
func Clean() {
	fmt.Println("Cleaning...")

	for _, artifact := range []string{binaryName, coverProfile, "coverage.html"} {
		_ = os.Remove(artifact)
	}
}

// run runs a command with the caller's stdio attached
func run(c context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(c, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
