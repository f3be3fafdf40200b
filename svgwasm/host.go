//go:build !wasip1

package main

import (
	"os"

	"github.com/pterm/pterm"
)

func main() {
	pterm.Error.Println("svgwasm is a WebAssembly module, build it with GOOS=wasip1 GOARCH=wasm")
	os.Exit(1)
}
