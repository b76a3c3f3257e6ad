//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	appName = "lumen-web"
	binDir  = "bin"
	tmpDir  = "tmp"
	webPkg  = "./cmd/web"

	seedFile = "testdata/catalog.yaml"
)

var goTest = sh.RunCmd("go", "test", "./...", "-count=1")

var Default = Dev

// DB groups schema and fixture targets. Both need DB_DSN.
type DB mg.Namespace

// Dev runs the server, with hot reload when air is on PATH.
func Dev() error {
	mg.Deps(Tidy)
	if have("air") {
		return sh.RunV("air")
	}
	fmt.Println("air not found, using go run (mage tools installs it)")
	return Run()
}

func Run() error {
	return sh.RunV("go", "run", webPkg)
}

// Build writes a static binary to bin/.
func Build() error {
	mg.Deps(Tidy)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(binDir, appName)
	if runtime.GOOS == "windows" {
		out += ".exe"
	}
	fmt.Println("building", out)
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "0"}, "go", "build", "-trimpath", "-o", out, webPkg)
}

func Test() error { return goTest() }

func TestRace() error { return goTest("-race") }

func Fmt() error {
	return sh.RunV("gofmt", "-l", "-w", "cmd", "internal", "pkg", "templates", "magefile.go")
}

func Lint() error {
	if !have("golangci-lint") {
		return fmt.Errorf("golangci-lint not found, run mage tools")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

// Check is what CI runs.
func Check() {
	mg.SerialDeps(Fmt, Lint, Test)
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Clean() {
	for _, dir := range []string{binDir, tmpDir} {
		_ = sh.Rm(dir)
	}
}

// Migrate creates or updates every table.
func (DB) Migrate() error {
	return sh.RunV("go", "run", "./cmd/tools/migrate")
}

// Seed loads the sample catalog. SEED_ADMIN names an account to promote.
func (DB) Seed() error {
	mg.Deps(DB.Migrate)
	args := []string{"run", "./cmd/tools/seedcatalog", "-file", seedFile}
	if admin := os.Getenv("SEED_ADMIN"); admin != "" {
		args = append(args, "-admin", admin)
	}
	return sh.RunV("go", args...)
}

// Tools installs air and golangci-lint into GOBIN.
func Tools() error {
	for _, pkg := range []string{
		"github.com/air-verse/air@latest",
		"github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest",
	} {
		if err := sh.RunV("go", "install", pkg); err != nil {
			return err
		}
	}
	if !have("air") || !have("golangci-lint") {
		fmt.Println("installed, but GOBIN is not on PATH")
	}
	return nil
}

func have(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}
