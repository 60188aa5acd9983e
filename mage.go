//go:build mage
// +build mage

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	packageName = "github.com/chembl/sdf2index"
)

var ldflags = "-X main.version=$VERSION -X main.buildDate=$BUILD_DATE"

// Build compiles the binary into build/ stamping version and build date
func Build() error {
	log.Print("running go build")
	return sh.RunWith(flagEnv(), "go", "build", "-o", "build/sdf2index", "-ldflags", ldflags, packageName)
}

// Test runs the package tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Install the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	fmt.Println("Installing...")
	return sh.RunWith(flagEnv(), "go", "install", "-ldflags", ldflags, packageName)
}

func flagEnv() map[string]string {
	version, err := sh.Output("git", "describe", "--tags")
	if err != nil {
		version, _ = sh.Output("git", "rev-parse", "--short", "HEAD")
	}
	return map[string]string{
		"VERSION":    version,
		"BUILD_DATE": time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

// Clean up after yourself
func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll("build")
}
